package lint_test

// Blank imports trigger the language sub-packages' init(), which
// registers python and r with the lint registry. This mirrors how cmd/
// enables languages in production without lint importing them directly
// (which would create an import cycle).
import (
	_ "github.com/rapkit/rapkit/lint/python"
	_ "github.com/rapkit/rapkit/lint/rlang"
)
