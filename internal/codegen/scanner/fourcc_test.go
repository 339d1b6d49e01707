package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
)

// Shaped like `cpp -P` output: unrelated declarations interleaved with the
// codec assignments.
const expandedSample = `typedef unsigned int uint32_t;
extern int vlc_something(void);

VLC_CODEC_4XM = VLC_FOURCC('4','X','M',' ')
VLC_CODEC_MPGV = VLC_CODEC_MPEG1V
VLC_CODEC_MPEG1V = VLC_FOURCC('m','p','g','v')
  VLC_CODEC_INDENTED_IS_NOT_A_MATCH
VLC_CODEC_SPACED = VLC_FOURCC ('s','p','c','d')   
`

func TestExtract(t *testing.T) {
	b, err := Extract(strings.NewReader(expandedSample), Options{Source: "fourcc_defs.i"})
	require.NoError(t, err)

	expected := []meta.Entry{
		{Name: "VLC_CODEC_4XM", Kind: meta.KindLiteral, Args: "('4','X','M',' ')", Line: 4},
		{Name: "VLC_CODEC_MPGV", Kind: meta.KindAlias, Target: "VLC_CODEC_MPEG1V", Line: 5},
		{Name: "VLC_CODEC_MPEG1V", Kind: meta.KindLiteral, Args: "('m','p','g','v')", Line: 6},
		{Name: "VLC_CODEC_SPACED", Kind: meta.KindLiteral, Args: "('s','p','c','d')", Line: 8},
	}
	assert.Equal(t, expected, b.Entries)
	assert.Equal(t, "fourcc_defs.i", b.Source)
	assert.NoError(t, b.Validate())
}

func TestExtractLiteral(t *testing.T) {
	b, err := Extract(strings.NewReader("VLC_CODEC_4XM = VLC_FOURCC('4','X','M',' ')\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	e := b.Entries[0]
	assert.Equal(t, "VLC_CODEC_4XM", e.Name)
	assert.Equal(t, meta.KindLiteral, e.Kind)
	assert.Equal(t, "('4','X','M',' ')", e.Args)
}

func TestExtractAlias(t *testing.T) {
	b, err := Extract(strings.NewReader("VLC_CODEC_MPGV = VLC_CODEC_MPEG1V\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	e := b.Entries[0]
	assert.Equal(t, meta.KindAlias, e.Kind)
	assert.Equal(t, "VLC_CODEC_MPEG1V", e.Target)
}

func TestExtractPreservesOrder(t *testing.T) {
	var sb strings.Builder
	names := []string{"VLC_CODEC_Z", "VLC_CODEC_A", "VLC_CODEC_M", "VLC_CODEC_B"}
	for _, n := range names {
		sb.WriteString("int noise;\n")
		sb.WriteString(n + " = VLC_FOURCC('a','b','c','d')\n")
	}

	b, err := Extract(strings.NewReader(sb.String()), Options{})
	require.NoError(t, err)
	require.Equal(t, len(names), b.Len())
	for i, n := range names {
		assert.Equal(t, n, b.Entries[i].Name)
	}
}

func TestExtractIgnoresNonQualifying(t *testing.T) {
	in := "# 1 \"fourcc_defs.h\"\nstatic const int x = 1;\nAV_CODEC_X = VLC_FOURCC('a','b','c','d')\n"
	b, err := Extract(strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestExtractErrors(t *testing.T) {
	testCases := []struct {
		name        string
		in          string
		expectedErr error
		line        int
	}{
		{name: "missing separator", in: "VLC_CODEC_BAD VLC_CODEC_X\n", expectedErr: ErrMissingSeparator, line: 1},
		{name: "no spaces around equals", in: "VLC_CODEC_BAD=VLC_CODEC_X\n", expectedErr: ErrMissingSeparator, line: 1},
		{name: "empty value", in: "VLC_CODEC_OK = VLC_CODEC_X\nVLC_CODEC_BAD =   \n", expectedErr: ErrEmptyValue, line: 2},
		{name: "invalid name", in: "VLC_CODEC_BAD[2] = VLC_CODEC_X\n", expectedErr: ErrInvalidName, line: 1},
		{name: "arithmetic", in: "VLC_CODEC_BAD = VLC_CODEC_X + 1\n", expectedErr: ErrUnclassifiable, line: 1},
		{name: "expanded constructor", in: "VLC_CODEC_BAD = ((uint32_t)('a') | ((uint32_t)('b') << 8))\n", expectedErr: ErrUnclassifiable, line: 1},
		{name: "constructor without call", in: "VLC_CODEC_BAD = VLC_FOURCC 'a'\n", expectedErr: ErrUnclassifiable, line: 1},
		{name: "duplicate", in: "VLC_CODEC_A = VLC_CODEC_B\nint x;\nVLC_CODEC_A = VLC_CODEC_C\n", expectedErr: ErrDuplicateName, line: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Extract(strings.NewReader(tc.in), Options{})
			assert.Nil(t, b)
			require.ErrorIs(t, err, tc.expectedErr)

			var le *common.LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.line, le.Line)
		})
	}
}

func TestExtractDuplicateMentionsFirstLine(t *testing.T) {
	_, err := Extract(strings.NewReader("VLC_CODEC_A = VLC_CODEC_B\nVLC_CODEC_A = VLC_CODEC_C\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first defined on line 1")
}

func TestExtractIdentifierStartingWithConstructor(t *testing.T) {
	b, err := Extract(strings.NewReader("VLC_CODEC_X = VLC_FOURCC_LIKE\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, meta.KindAlias, b.Entries[0].Kind)
	assert.Equal(t, "VLC_FOURCC_LIKE", b.Entries[0].Target)
}

func TestExtractCustomFamily(t *testing.T) {
	in := "VLC_CODEC_A = VLC_CODEC_B\nAV_CODEC_H264 = MKTAG('H','2','6','4')\n"
	b, err := Extract(strings.NewReader(in), Options{Prefix: "AV_CODEC", Constructor: "MKTAG"})
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "('H','2','6','4')", b.Entries[0].Args)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fourcc_defs.i")
	require.NoError(t, os.WriteFile(path, []byte(expandedSample), 0o644))

	b, err := ExtractFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, path, b.Source)
	assert.Equal(t, 4, b.Len())

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.i"), Options{})
	assert.Error(t, err)
}
