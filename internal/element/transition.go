/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

// EnterNext returns the initial type of the element created after the
// current one when the user presses Enter. The classifier may override the
// assigned type once text accumulates; this table only decides the starting
// point. Total over all types.
func EnterNext(t Type) Type {
	switch t {
	case SceneHeading:
		return Action
	case Character:
		return Dialogue
	case Parenthetical:
		return Dialogue
	case Transition:
		return SceneHeading
	default: // Action, Dialogue, Shot and anything else
		return Action
	}
}

// TabNext returns the type the current element is forced into when the user
// presses Tab. Only the Action/Character/Dialogue/Parenthetical cycle reacts;
// every other type maps to itself. Total over all types.
func TabNext(t Type) Type {
	switch t {
	case Action:
		return Character
	case Character:
		return Dialogue
	case Dialogue:
		return Parenthetical
	case Parenthetical:
		return Dialogue
	default:
		return t
	}
}
