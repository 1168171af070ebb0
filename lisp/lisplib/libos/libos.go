package libos

import (
	"os"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the operating system natives with in.
func LoadPackage(in *lisp.Interpreter) error {
	in.AddNatives(builtins...)
	return nil
}

var builtins = []lisp.NativeDef{
	lisp.StrictNative("getenv", BuiltinGetenv),
	lisp.StrictNative("current-directory", BuiltinWorkDir),
	lisp.StrictNative("file-exists?", BuiltinFileExists),
	lisp.StrictNative("directory-exists?", BuiltinDirExists),
	lisp.StrictNative("delete-file", BuiltinRemove),
	lisp.StrictNative("delete-directory", BuiltinRemove),
	lisp.StrictNative("make-directory", BuiltinMkdir),
	lisp.StrictNative("rename-file-or-directory", BuiltinMove),
	lisp.StrictNative("file->string", BuiltinReadFile),
	lisp.StrictNative("display-to-file", BuiltinWriteFile),
}

func pathArg(fn string, args []lisp.Value, n int) (string, error) {
	if err := lisp.RequireArity(fn, args, n); err != nil {
		return "", err
	}
	return lisp.StringArg(fn, 1, args[0])
}

// BuiltinGetenv returns the value of an environment variable or #f if it is
// not set.
func BuiltinGetenv(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	key, err := pathArg("getenv", args, 1)
	if err != nil {
		return nil, err
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		return lisp.Bool(false), nil
	}
	return lisp.String(val), nil
}

func BuiltinWorkDir(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("current-directory", args, 0); err != nil {
		return nil, err
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, lisp.Errorf("current-directory: %v", err)
	}
	return lisp.String(dir), nil
}

func BuiltinFileExists(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	path, err := pathArg("file-exists?", args, 1)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return lisp.Bool(false), nil
	}
	if err != nil {
		return nil, lisp.Errorf("file-exists?: %v", err)
	}
	return lisp.Bool(!stat.IsDir()), nil
}

func BuiltinDirExists(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	path, err := pathArg("directory-exists?", args, 1)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return lisp.Bool(false), nil
	}
	if err != nil {
		return nil, lisp.Errorf("directory-exists?: %v", err)
	}
	return lisp.Bool(stat.IsDir()), nil
}

func BuiltinRemove(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	path, err := pathArg("delete-file", args, 1)
	if err != nil {
		return nil, err
	}
	err = os.Remove(path)
	if err != nil {
		return nil, lisp.Errorf("%v", err)
	}
	return lisp.Void{}, nil
}

func BuiltinMkdir(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	path, err := pathArg("make-directory", args, 1)
	if err != nil {
		return nil, err
	}
	err = os.Mkdir(path, 0755)
	if err != nil {
		return nil, lisp.Errorf("make-directory: %v", err)
	}
	return lisp.Void{}, nil
}

func BuiltinMove(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	src, err := pathArg("rename-file-or-directory", args, 2)
	if err != nil {
		return nil, err
	}
	dst, err := lisp.StringArg("rename-file-or-directory", 2, args[1])
	if err != nil {
		return nil, err
	}
	err = os.Rename(src, dst)
	if err != nil {
		return nil, lisp.Errorf("rename-file-or-directory: %v", err)
	}
	return lisp.Void{}, nil
}

func BuiltinReadFile(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	path, err := pathArg("file->string", args, 1)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, lisp.Errorf("file->string: %v", err)
	}
	return lisp.String(string(b)), nil
}

// BuiltinWriteFile writes the display form of a value to a file, replacing
// any existing content.
func BuiltinWriteFile(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("display-to-file", args, 2); err != nil {
		return nil, err
	}
	path, err := lisp.StringArg("display-to-file", 2, args[1])
	if err != nil {
		return nil, err
	}
	err = os.WriteFile(path, []byte(lisp.DisplayString(args[0])), 0644)
	if err != nil {
		return nil, lisp.Errorf("display-to-file: %v", err)
	}
	return lisp.Void{}, nil
}
