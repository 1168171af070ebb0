// NOTE:  This file uses package name suffixed with _test to avoid an import
// cycle.
package libstring_test

import (
	"testing"

	"github.com/bmatsuo/rkt/rkttest"
)

func TestPackage(t *testing.T) {
	r := &rkttest.Runner{}
	r.RunTestFile(t, "string_test.rkt")
}
