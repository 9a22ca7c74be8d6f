/*
Package exprparse parses infix Boolean expressions over named variables —
"+" for OR, implicit adjacency (or "*"/"·") for AND, a trailing "'" or a
leading "!"/"¬" for NOT, and parentheses for grouping — and evaluates them
against every point of an n-variable input space to recover the on-minterms
the "kmapmin minimize --expression" flag needs.

The recursive-descent shape (a scan/token pair advanced one token at a
time, one parse method per precedence level) is grounded on bf/parser.go's
formula parser, but tokenization here is hand-rolled rather than built on
text/scanner: text/scanner's default mode treats a leading "'" as the start
of a quoted rune literal, which collides with this grammar's postfix
complement operator, so scanner.Scanner was not a good fit for this token
set.
*/
package exprparse
