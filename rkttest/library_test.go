package rkttest

import "testing"

func TestLibrary(t *testing.T) {
	tests := TestSuite{
		{"format", TestSequence{
			{`(format "~a + ~s = ~a" "x" "y" 3)`, `"x + \"y\" = 3"`, ""},
			{`(format "~~~a" 1)`, `"~1"`, ""},
			{`(format "~a" '(1 a "b"))`, `"(1 a \"b\")"`, ""},
			{`(format "~a")`, "format: too many formatting directives for supplied values", ""},
			{`(format "~a" 1 2)`, "format: format string requires 1 arguments, given 2", ""},
			{`(printf "~a~n" 42)`, "", "42\n"},
		}},
		{"strings", TestSequence{
			{`(string-join (list "a" "b") ", ")`, `"a, b"`, ""},
			{`(string-join (list "a" "b"))`, `"a b"`, ""},
			{`(string-split "a b  c")`, `'("a" "b" "c")`, ""},
			{`(make-string 3 #\a)`, `"aaa"`, ""},
			{`(make-string 2)`, `"  "`, ""},
			{`(make-string -1 #\a)`, "make-string: unexpected type for argument 1: expected non-negative integer, got integer", ""},
			{`(make-string 4611686018427387904 #\a)`, "make-string: length 4611686018427387904 exceeds the maximum of 16777216", ""},
			{`(string-split "a,b,,c" ",")`, `'("a" "b" "c")`, ""},
			{`(string-trim "  x ")`, `"x"`, ""},
			{`(string-replace "banana" "an" "AN")`, `"bANANa"`, ""},
			{`(string-contains? "hello" "ell")`, "#t", ""},
			{`(string-prefix? "hello" "he")`, "#t", ""},
			{`(string-suffix? "hello" "he")`, "#f", ""},
		}},
		{"math", TestSequence{
			{"(sqrt 16)", "4", ""},
			{"(sqrt 2)", "1.4142135623730951", ""},
			{"(expt 2 10)", "1024", ""},
			{"(expt 2 -1)", "0.5", ""},
			{"(round 2.5)", "2.0", ""},
			{"(round 3.5)", "4.0", ""},
			{"(floor 2.7)", "2.0", ""},
			{"(ceiling 5)", "5", ""},
			{"(add1 1)", "2", ""},
			{"(sub1 1.5)", "0.5", ""},
			{"(exact->inexact 3)", "3.0", ""},
			{"(even? 4)", "#t", ""},
			{"(odd? 4)", "#f", ""},
			{"(zero? 0.0)", "#t", ""},
			{"pi", "3.141592653589793", ""},
			{`(sqrt "4")`, `sqrt: unexpected type for argument 1: expected number, got string`, ""},
		}},
		{"regexp", TestSequence{
			{`(regexp-match? "a+" "caaat")`, "#t", ""},
			{`(regexp-match? "^a" "caaat")`, "#f", ""},
			{`(regexp-match "(a+)(x)?" "caaat")`, `'("aaa" "aaa" #f)`, ""},
			{`(regexp-match "z" "caaat")`, "#f", ""},
			{`(regexp-replace "a" "banana" "o")`, `"bonana"`, ""},
			{`(regexp-replace* "a" "banana" "o")`, `"bonono"`, ""},
		}},
		{"json", TestSequence{
			{`(jsexpr->string (string->jsexpr "{\"b\": [1, 2.5, true], \"a\": null}"))`,
				`"{\"a\":null,\"b\":[1,2.5,true]}"`, ""},
			{`(string->jsexpr "[1, \"x\"]")`, `'(1 "x")`, ""},
			{`(jsexpr->string (list 1 "two" #f))`, `"[1,\"two\",false]"`, ""},
		}},
		{"environment", TestSequence{
			{"(string? (current-directory))", "#t", ""},
			{`(getenv "RKT_TEST_VARIABLE_THAT_IS_NOT_SET")`, "#f", ""},
			{"(integer? (current-seconds))", "#t", ""},
			{`(file-exists? "library_test.go")`, "#t", ""},
			{`(directory-exists? "library_test.go")`, "#f", ""},
		}},
	}
	RunTestSuite(t, tests)
}
