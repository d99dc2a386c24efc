// Copyright 2026 Arcatext
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidBatch indicates a Batch failed validation.
	ErrInvalidBatch = errors.New("invalid batch")

	// ErrEmptyTitle indicates the article Title field is empty.
	ErrEmptyTitle = errors.New("article title cannot be empty")

	// ErrEmptyLink indicates the article Link field is empty.
	ErrEmptyLink = errors.New("article link cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrNoFeeds indicates a batch lists no feed URLs.
	ErrNoFeeds = errors.New("batch must list at least one feed URL")

	// ErrThresholdRange indicates a threshold lies outside [0,1].
	ErrThresholdRange = errors.New("threshold must be between 0 and 1")

	// ErrDanglingDuplicate indicates a duplicate flag with no canonical
	// reference, or the reverse.
	ErrDanglingDuplicate = errors.New("duplicate flag and canonical reference must be set together")
)
