/*
Package config manages configuration parsing and validation for absrewrite.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Loads the rewrite modes, file globs and watch timings from a file
- Validates modes and globs before any file is touched
- Applies defaults so a missing or empty file means "abs, abs"

🔄 Flow:
1. Reads the configuration file
2. Picks a parser from the file extension
3. Validates values and fills in defaults
4. Exposes typed views (rewrite.Modes, durations) to other packages

🔍 Example:

	modes:
	  eq: square
	  le: range
	files:
	  include: ["*.txt", "docs/*.lua"]
	  ignore: ["vendor/**"]
	write: true
	debounce: 120ms

	cfg, err := config.LoadConfig(ctx, ".absrewrite.yaml")
	if err != nil {
		return err
	}
	out := rewrite.Transform(text, cfg.RewriteModes())
*/
package config
