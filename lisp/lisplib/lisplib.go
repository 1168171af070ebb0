// Package lisplib is used to conveniently load the standard library natives
// into an interpreter.
package lisplib

import (
	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/lisp/lisplib/libjson"
	"github.com/bmatsuo/rkt/lisp/lisplib/libmath"
	"github.com/bmatsuo/rkt/lisp/lisplib/libos"
	"github.com/bmatsuo/rkt/lisp/lisplib/libregexp"
	"github.com/bmatsuo/rkt/lisp/lisplib/libstring"
	"github.com/bmatsuo/rkt/lisp/lisplib/libtesting"
	"github.com/bmatsuo/rkt/lisp/lisplib/libtime"
)

// LoadLibrary registers the standard library with in.
func LoadLibrary(in *lisp.Interpreter) error {
	err := libtime.LoadPackage(in)
	if err != nil {
		return err
	}
	err = libmath.LoadPackage(in)
	if err != nil {
		return err
	}
	err = libstring.LoadPackage(in)
	if err != nil {
		return err
	}
	err = libjson.LoadPackage(in)
	if err != nil {
		return err
	}
	err = libregexp.LoadPackage(in)
	if err != nil {
		return err
	}
	err = libos.LoadPackage(in)
	if err != nil {
		return err
	}
	return libtesting.LoadPackage(in)
}

// WithLibrary returns a Config that loads the standard library.
func WithLibrary() lisp.Config {
	return LoadLibrary
}
