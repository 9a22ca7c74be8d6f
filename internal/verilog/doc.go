/*
Package verilog renders a qm.Result as synthesizable Verilog: a behavioral
always-block, a dataflow assign statement, an explicit gate-level netlist,
and a testbench that prints each vector's output next to the expected
value. It is a pure string-rendering collaborator
of internal/qm — it imports qm's result types, but qm never imports this
package, so the core minimizer stays free of any notion of hardware
description languages.

Unlike the original implementation this is grounded on, which re-parsed a
rendered SOP string back into literals, this package works directly from
the []cube.Cube values a Result already carries, since that's the data
Go's caller actually has in hand.
*/
package verilog
