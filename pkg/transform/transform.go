// Copyright 2025 walteh LLC
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

// Package transform provides reversible tree transformations.
package transform

import (
	"context"
	"fmt"

	"github.com/walteh/replacerc/pkg/template"
	"github.com/walteh/replacerc/pkg/walker"
)

// 🎯 Transformation is the capability set every transformation variant
// exposes: run it over a working tree, invert it, and identify it.
type Transformation interface {
	// Apply runs the transformation over every file the tree yields.
	Apply(ctx context.Context, tree *walker.Tree, opts walker.Options) (*walker.VisitResult, error)
	// Reverse returns the inverse transformation, or a *NonReversibleError
	// when inversion is not safe.
	Reverse() (Transformation, error)
	// Describe returns the transformation's string identity.
	Describe() string
}

// ❌ NonReversibleError reports a transformation that cannot be safely
// inverted. It carries the underlying validation failure and its config
// location.
type NonReversibleError struct {
	Location template.Location
	Cause    error
}

func (e *NonReversibleError) Error() string {
	return fmt.Sprintf("%s: transformation is not reversible: %v", e.Location, e.Cause)
}

func (e *NonReversibleError) Unwrap() error {
	return e.Cause
}
