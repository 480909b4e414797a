// Copyright 2025 Poiesic Systems
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


// Package textproc normalizes text for lexical indexing: lower-casing,
// splitting into alphabetic tokens, stop-word removal and snowball
// stemming. Normalization is a pure function of its input; queries and
// indexed documents go through the same path so lexical scoring compares
// like with like.
package textproc
