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

package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStaticPolarity(t *testing.T) {
	lx := DefaultStatic()
	assert.Equal(t, 1, lx.Polarity("happy"))
	assert.Equal(t, 1, lx.Polarity("Good"))
	assert.Equal(t, -1, lx.Polarity("failure"))
	assert.Equal(t, -1, lx.Polarity("lost"))
	assert.Equal(t, 0, lx.Polarity("pizza"))
	assert.Equal(t, 0, lx.Polarity("ate"))
	assert.False(t, lx.Has("people"))
	assert.True(t, lx.Has("sad"))
	assert.Greater(t, lx.Len(), 100)
}

func TestNewStaticNegativeWins(t *testing.T) {
	lx, err := NewStatic(
		strings.NewReader("; comment\nfine\n\nsick\n"),
		strings.NewReader("sick\nawful\n"),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, lx.Len())
	assert.Equal(t, 1, lx.Polarity("fine"))
	assert.Equal(t, -1, lx.Polarity("sick"))
	assert.Equal(t, -1, lx.Polarity("awful"))
	assert.False(t, lx.Has("; comment"))
}

func TestNewStaticFirstColumnOnly(t *testing.T) {
	lx, err := NewStatic(
		strings.NewReader("nice,1\n"),
		strings.NewReader("ugly,whatever,else\n"),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, lx.Polarity("nice"))
	assert.Equal(t, -1, lx.Polarity("ugly"))
	assert.False(t, lx.Has("1"))
}

func TestLoadStaticFromFiles(t *testing.T) {
	dir := t.TempDir()
	pos := filepath.Join(dir, "pos.txt")
	neg := filepath.Join(dir, "neg.txt")
	require.NoError(t, os.WriteFile(pos, []byte("groovy\n"), 0644))
	require.NoError(t, os.WriteFile(neg, []byte("bogus\n"), 0644))
	lx, err := LoadStatic(pos, neg)
	require.NoError(t, err)
	assert.Equal(t, 2, lx.Len())
	assert.Equal(t, 1, lx.Polarity("groovy"))
	assert.Equal(t, 0, lx.Polarity("happy"))
}

func TestLoadStaticMissingFile(t *testing.T) {
	_, err := LoadStatic(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func TestCuesMatches(t *testing.T) {
	cues := DefaultCues()
	assert.True(t, cues.Matches("I did it because I had to."))
	assert.True(t, cues.Matches("BECAUSE of the failure of Congress"))
	assert.True(t, cues.Matches("As a result, prices rose."))
	assert.False(t, cues.Matches("I ate pizza"))
	assert.False(t, cues.Matches(""))
}

func TestNewCuesNormalizes(t *testing.T) {
	cues := NewCues(" Hence ", "", "THUS")
	assert.Equal(t, []string{"hence", "thus"}, cues.Phrases())
	assert.True(t, cues.Matches("and thus it happened"))
}
