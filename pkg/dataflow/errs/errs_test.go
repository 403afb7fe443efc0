/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := New(InvalidPipeline, "unattached transforms: [Map(x)]")
	assert.True(t, errors.Is(err, IsKind(InvalidPipeline)))
	assert.False(t, errors.Is(err, IsKind(InternalError)))
	assert.Equal(t, "InvalidPipeline: unattached transforms: [Map(x)]", err.Error())
}

func TestKindMatchingThroughWrapping(t *testing.T) {
	inner := New(InvalidArgument, "newCount 1 < currentCount 2")
	wrapped := fmt.Errorf("increasing partitions: %w", inner)
	assert.True(t, errors.Is(wrapped, IsKind(InvalidArgument)))
}

func TestCombinedCauses(t *testing.T) {
	err := New(InvalidPipeline, "validation failed",
		errors.New("first leak"), errors.New("second leak"))
	assert.Contains(t, err.Error(), "first leak")
	assert.Contains(t, err.Error(), "second leak")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestNoCauses(t *testing.T) {
	err := New(ContractViolation, "previous result not drained")
	assert.Nil(t, errors.Unwrap(err))
}
