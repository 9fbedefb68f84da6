/*
Package operation runs the rewriter over files selected by a config.

	+----------+     +-----------+     +------------------+
	|  Runner  | --> | Operation | --> | BaseOperation    |
	| sync or  |     |  rewrite  |     |  plan (globs)    |
	|  async   |     |  check    |     |  visit (errgroup)|
	+----------+     +-----------+     +--------+---------+
	                                            |
	                                   rewrite.Rewriter per file

🎯 Purpose:
- Expands include globs relative to the config directory and drops ignored paths
- Rewrites files concurrently, bounded by the configured concurrency
- Writes changed files atomically, or prints them when writing is off
- Reports files a rewrite would change, optionally with diffs

⚡ Key Responsibilities:
- A failing file is recorded and logged; the remaining files still run
- Printed content and diffs come out in path order regardless of worker timing
- The check operation wraps ErrRewriteNeeded so callers can pick an exit code

🔍 Example:

	op, err := operation.NewCheckOperation(operation.Options{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
	}, true)
	if err != nil {
		return err
	}
	if err := operation.NewRunner(false).Run(ctx, op); errors.Is(err, operation.ErrRewriteNeeded) {
		os.Exit(1)
	}
*/
package operation
