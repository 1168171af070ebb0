package libos

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	in, err := lisp.New(lisp.WithReader(rdparser.NewReader()), LoadPackage)
	require.NoError(t, err)
	dir := t.TempDir()
	eval := func(format string, v ...interface{}) string {
		val, err := in.LoadString("test", fmt.Sprintf(format, v...))
		require.NoError(t, err)
		return val.String()
	}

	sub := filepath.Join(dir, "sub")
	file := filepath.Join(sub, "a.txt")
	moved := filepath.Join(sub, "b.txt")
	assert.Equal(t, "#f", eval("(directory-exists? %q)", sub))
	eval("(make-directory %q)", sub)
	assert.Equal(t, "#t", eval("(directory-exists? %q)", sub))
	assert.Equal(t, "#f", eval("(file-exists? %q)", sub))

	eval(`(display-to-file "hello" %q)`, file)
	assert.Equal(t, "#t", eval("(file-exists? %q)", file))
	assert.Equal(t, `"hello"`, eval("(file->string %q)", file))
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	eval("(rename-file-or-directory %q %q)", file, moved)
	assert.Equal(t, "#f", eval("(file-exists? %q)", file))
	eval("(delete-file %q)", moved)
	eval("(delete-directory %q)", sub)
	assert.Equal(t, "#f", eval("(directory-exists? %q)", sub))

	_, err = in.LoadString("test", fmt.Sprintf("(file->string %q)", file))
	assert.Error(t, err)
}

func TestGetenv(t *testing.T) {
	t.Setenv("RKT_LIBOS_TEST", "value")
	in, err := lisp.New(lisp.WithReader(rdparser.NewReader()), LoadPackage)
	require.NoError(t, err)
	v, err := in.LoadString("test", `(getenv "RKT_LIBOS_TEST")`)
	require.NoError(t, err)
	assert.Equal(t, `"value"`, v.String())
}
