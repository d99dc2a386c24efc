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


package openai

import "regexp"

// Small models occasionally drop quotes around object keys. These patterns
// catch a key missing its opening quote (`reason":`) and a fully unquoted
// key (`reason:`) right after an object brace or a comma.
var (
	halfQuotedKeyPattern = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)":`)
	unquotedKeyPattern   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// repairJSON fixes the key-quoting mistakes LLMs commonly make in JSON-mode
// responses. Valid JSON passes through unchanged.
func repairJSON(s string) string {
	s = halfQuotedKeyPattern.ReplaceAllString(s, `$1"$2":`)
	s = unquotedKeyPattern.ReplaceAllString(s, `$1"$2":`)
	return s
}
