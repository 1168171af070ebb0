package rkttest

import "testing"

func TestLists(t *testing.T) {
	tests := TestSuite{
		{"construction", TestSequence{
			{"(cons 1 2)", "'(1 . 2)", ""},
			{"(cons 1 '())", "'(1)", ""},
			{"(cons 1 (cons 2 null))", "'(1 2)", ""},
			{"(list 1 2 3)", "'(1 2 3)", ""},
			{"(list)", "'()", ""},
			{"null", "'()", ""},
			{"empty", "'()", ""},
			{"(list 'a 'b)", "'(a b)", ""},
			{"(list 1 (list 2 3))", "'(1 (2 3))", ""},
			{"(cons '(1) '(2))", "'((1) 2)", ""},
			{`(list "a" #\b)`, `'("a" #\b)`, ""},
		}},
		{"access", TestSequence{
			{"(car '(1 2 3))", "1", ""},
			{"(cdr '(1 2 3))", "'(2 3)", ""},
			{"(car (cons 1 2))", "1", ""},
			{"(cdr (cons 1 2))", "2", ""},
			{"(car null)", "car: unexpected type for argument 1: expected pair, got list", ""},
			{"(length '(1 2 3))", "3", ""},
			{"(list-ref '(a b c) 1)", "'b", ""},
			{"(list-ref '(1 2) 5)", "out of bounds, len is 2 but index 5 was accessed", ""},
			{"(list-tail '(1 2 3) 1)", "'(2 3)", ""},
			{"(append '(1) '(2 3) '())", "'(1 2 3)", ""},
			{"(reverse '(1 2 3))", "'(3 2 1)", ""},
			{`(list->string (list #\a #\b))`, `"ab"`, ""},
			{`(string->list "ab")`, `'(#\a #\b)`, ""},
		}},
		{"predicates", TestSequence{
			{"(null? '())", "#t", ""},
			{"(null? null)", "#t", ""},
			{"(empty? '(1))", "#f", ""},
			{"(list? '(1))", "#t", ""},
			{"(list? 1)", "#f", ""},
			{"(pair? (cons 1 2))", "#t", ""},
			{"(pair? '())", "#f", ""},
			{"(procedure? car)", "#t", ""},
			{"(procedure? (lambda (x) x))", "#t", ""},
			{"(procedure? 1)", "#f", ""},
			{"(symbol? 'a)", "#t", ""},
			{"(symbol? \"a\")", "#f", ""},
			{`(string? "a")`, "#t", ""},
			{"(number? 1.5)", "#t", ""},
			{"(integer? 2.0)", "#t", ""},
			{"(integer? 2.5)", "#f", ""},
			{"(boolean? #f)", "#t", ""},
		}},
		{"higher order", TestSequence{
			{"(map (lambda (x) (* x x)) '(1 2 3))", "'(1 4 9)", ""},
			{"(map + '(1 2) '(10 20))", "'(11 22)", ""},
			{"(map car '((1 2) (3 4)))", "'(1 3)", ""},
			{"(map (lambda (x) x) '(a b))", "'(a b)", ""},
			{"(map + '(1 2) '(1))", "map: all lists must have the same size", ""},
			{"(filter (lambda (x) (> x 1)) '(1 2 3))", "'(2 3)", ""},
			{"(filter (lambda (x) x) '(1 2))", "filter: predicate returned integer, expected boolean", ""},
			{"(foldl cons '() '(1 2 3))", "'(3 2 1)", ""},
			{"(foldr cons '() '(1 2 3))", "'(1 2 3)", ""},
			{"(foldl + 0 '(1 2 3))", "6", ""},
			{"(foldl - 0 '(1 2 3))", "2", ""},
			{"(apply + 1 2 '(3 4))", "10", ""},
			{"(build-list 4 (lambda (i) (* i i)))", "'(0 1 4 9)", ""},
			{"(build-list 0 (lambda (i) i))", "'()", ""},
			{"(build-list -1 (lambda (i) i))", "build-list: unexpected type for argument 1: expected non-negative integer, got integer", ""},
			{"(build-list 4611686018427387904 (lambda (i) i))", "build-list: length 4611686018427387904 exceeds the maximum of 16777216", ""},
			{"(define (twice f x) (f (f x)))", "", ""},
			{"(twice (lambda (n) (* n 3)) 2)", "18", ""},
		}},
	}
	RunTestSuite(t, tests)
}
