// Copyright 2026 The COMPEL-O-METER authors
//   This file is part of COMPEL-O-METER.
//
//  COMPEL-O-METER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  COMPEL-O-METER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with COMPEL-O-METER.  If not, see <https://www.gnu.org/licenses/>.

package merror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(InputError{Msg: "empty text"}))
	assert.Equal(
		t,
		http.StatusUnprocessableEntity,
		HTTPStatus(fmt.Errorf("failed to score: %w", InputError{Msg: "bad mode"})),
	)
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(TimeoutError{Msg: "no worker"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(RecoveredError{Msg: "panic"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("foo")))
}

func TestPanicValueToErr(t *testing.T) {
	orig := errors.New("index out of range")
	err := PanicValueToErr(orig)
	assert.ErrorIs(t, err, orig)
	assert.Equal(t, "recovered panic: boom", PanicValueToErr("boom").Error())
	assert.Equal(t, "recovered panic from an error of type int", PanicValueToErr(42).Error())
}

func TestErrorMarshalJSON(t *testing.T) {
	v, err := InputError{Msg: "foo"}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"foo"`, string(v))
	v, err = TimeoutError{}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(v))
}
