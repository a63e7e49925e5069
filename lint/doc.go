// Package lint runs static analysis over code blocks embedded in
// documentation files.
//
// The package owns the Diagnostic/Report types, the language registry,
// and the pipeline that turns a document into per-language shadow files
// and diagnostics. Language implementations live in sub-packages
// (lint/python, lint/rlang) and register themselves via init(), so
// importing a language package is what enables it. Production code
// imports them from cmd/; tests that need a language blank-import it.
package lint
