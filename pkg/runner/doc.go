/*
Package runner implements the interactive loop of the tracer.

It asks for a string, then for a max depth, traces the pair and prints the
report, until the user answers "quit" or input ends. Non-numeric or
non-positive depths are asked again. Every report can also be appended to a
sink in the reference text format, which is how the CLI produces its
output file.

# Usage

	r := runner.NewRunner(
		runner.WithSink(outputFile),
		runner.WithLogger(logger),
	)

	if _, err := r.Run(ctx, machine); err != nil {
		log.Fatal(err)
	}
*/
package runner
