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


// Package ai defines the contracts for the AI services newsift depends on.
//
// Four interfaces make up the surface:
//
//   - Embedder: generates vector embeddings from text
//   - Classifier: scores articles against free-form user criteria
//   - Summarizer: condenses article text into short abstracts
//   - Provider: bundles the three for convenient initialization
//
// Two sub-packages implement them: ai/openai talks to OpenAI-compatible
// APIs (Ollama, LocalAI, vLLM, the hosted service), ai/mock provides
// deterministic test doubles.
//
// Production constructors return interface types so callers never couple to
// a concrete client:
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Central bank raises rates")
//	verdict, err := provider.Classifier().Classify(ctx, title, body, "monetary policy")
//
// Mock constructors return concrete types instead, since tests need the
// function fields and call counters (see ai/mock).
package ai
