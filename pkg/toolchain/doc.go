/*
Package toolchain provides a generic compiler abstraction used to set up
the build environment of a toolchain. It maps abstract toolchain options
(for example "openmp" or "pic") onto the flags understood by a given
compiler family, and exports the resulting compiler commands and flags
through environment variables.

Compiler families publish their flag tables through RegisterFlagTable,
usually from an init function, so that other families can refer to them
by name through LookupFlagTable.
*/
package toolchain
