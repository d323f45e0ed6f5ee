/*
Package dsl provides a Go DSL for programmatically constructing Turing machine definitions.

It is the in-code alternative to CSV and YAML files, which makes it handy for
unit tests, generated machines and examples.

Example usage:

	b := dsl.New("a-star").
		Input("a").
		Start("q0").
		Accept("qa").
		Reject("qr")

	b.State("q0").
		Right("a", "q0", "a").
		Right("_", "qa", "_")

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	machine := tracetm.NewFromDefinition(def)
*/
package dsl
