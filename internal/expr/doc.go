// Package expr implements the calculator language evaluated by bigcalc.
//
// A program is one or more expressions separated by ';'. Operators follow C
// precedence and associativity:
//
//	=  +=  -=  *=  /=  %=  &=  |=  ^=  <<=  >>=   (right associative)
//	|
//	^
//	&
//	==  !=
//	<  <=  >  >=
//	<<  >>
//	+  -
//	*  /  %
//	unary + - ~ ++ --, postfix ++ --
//
// All values are bigint.Int. Comparisons yield 1 or 0, division truncates
// toward zero and shifts floor. Variables live in an Env and builtins such as
// pow, gcd, min and max are called with the usual f(a, b) syntax.
package expr
