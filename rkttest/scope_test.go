package rkttest

import "testing"

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"lexical scope", TestSequence{
			{"(let ((x 1)) x)", "1", ""},
			{"x", "unknown identifier: x", ""},
			{"(define x 1)", "", ""},
			{"(let ((x 2)) x)", "2", ""},
			{"x", "1", ""},
			{"(define (fn y) (+ x y))", "", ""},
			{"(fn 2)", "3", ""},
			// a caller's local binding does not leak into the callee
			{"(let ((x 5)) (fn 1))", "2", ""},
			{"(((lambda (x) (lambda () (+ x 2))) 3))", "5", ""},
		}},
		{"local definitions", TestSequence{
			{"(define (g) (define w 5) (* w 2))", "", ""},
			{"(g)", "10", ""},
			{"w", "unknown identifier: w", ""},
			// control forms at the top level define globals
			{"(begin (define q 3))", "", ""},
			{"q", "3", ""},
			{"(when #t (define r 4))", "", ""},
			{"r", "4", ""},
		}},
		{"shadowing", TestSequence{
			{"(define (h x) (let ((x 10)) x))", "", ""},
			{"(h 1)", "10", ""},
			{"(define (k x) ((lambda (x) x) 7))", "", ""},
			{"(k 1)", "7", ""},
			{"(define (m x) (let* ((y x) (x 3)) (+ x y)))", "", ""},
			{"(m 1)", "4", ""},
			// quoted data is never rewritten by substitution
			{"(define (sym x) 'x)", "", ""},
			{"(sym 1)", "'x", ""},
		}},
		{"let", TestSequence{
			{"(let ((x 1) (y 2)) (+ x y))", "3", ""},
			{"(let* ((x 1) (y (+ x 1))) (* x y))", "2", ""},
			{"(let () 5)", "5", ""},
			{"(let ((x 1) (y 2)) (if x (+ x y) y))", "3", ""},
			{`(let ((x 1) (y 2))
				(cond
					((< y 0) y)
					(else x)))`, "1", ""},
		}},
		{"arguments of every type stay lexical", TestSequence{
			{"(define y 1)", "", ""},
			{"(define (gety) y)", "", ""},
			{"(define (scalar y) (gety))", "", ""},
			{"(define (composed y) (gety))", "", ""},
			{"(scalar 5)", "1", ""},
			{"(composed (list 5))", "1", ""},
			{"(composed (cons 1 2))", "1", ""},
			{"(composed (lambda () 5))", "1", ""},
			{"(composed gety)", "1", ""},
			{"(define (outer) (define y 7) (gety))", "", ""},
			{"(outer)", "1", ""},
			{"((lambda y (gety)) 1 2)", "1", ""},
			{"((lambda y y) 1 2)", "'(1 2)", ""},
		}},
		{"procedure arguments", TestSequence{
			{"(define (call-with f x) (f x))", "", ""},
			{"(call-with car (list 1 2))", "1", ""},
			{"(call-with (lambda (l) (cons 0 l)) (list 1))", "'(0 1)", ""},
			{"(define (first-of l) (car l))", "", ""},
			{"(first-of (list (list 1) 2))", "'(1)", ""},
		}},
		{"local recursion", TestSequence{
			{`(define (count-up n)
				(define loop
					(lambda (i acc)
						(if (= i 0) acc (loop (- i 1) (cons i acc)))))
				(loop n '()))`, "", ""},
			{"(count-up 3)", "'(1 2 3)", ""},
			{`(define (parity n)
				(define (ev? k) (if (= k 0) #t (od? (- k 1))))
				(define (od? k) (if (= k 0) #f (ev? (- k 1))))
				(ev? n))`, "", ""},
			{"(parity 4)", "#t", ""},
			{"(parity 3)", "#f", ""},
			{"loop", "unknown identifier: loop", ""},
		}},
		{"closures", TestSequence{
			{"(define (make-prepender lst) (lambda (x) (cons x lst)))", "", ""},
			{"((make-prepender (list 1 2)) 0)", "'(0 1 2)", ""},
			{"(define (adder n) (lambda (x) (+ x n)))", "", ""},
			{"(define add2 (adder 2))", "", ""},
			{"(add2 40)", "42", ""},
			{"(map (adder 10) '(1 2))", "'(11 12)", ""},
		}},
	}
	RunTestSuite(t, tests)
}
