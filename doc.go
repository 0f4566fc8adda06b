// Package mathtok converts MathML, standalone or embedded in HTML, into a
// compact linear token stream for text and machine-learning pipelines.
//
// The converter is a streaming transducer over parse events. Every element
// is classified into one of four traversal modes:
//   - Tokens: character data is emitted, and labelled elements are bracketed
//     as [sqrt] ... [end_sqrt].
//   - Args: each child subtree is one argument. Single-token arguments are
//     written bare, others are wrapped in [arg] ... [end_arg].
//   - Unwrap: the element is transparent and inherits the enclosing mode.
//   - Skip: the whole subtree is dropped.
//
// Elements outside the known vocabulary are skipped and reported as
// diagnostics rather than failing the conversion.
//
// Example:
//
//	out, err := mathtok.ConvertString(
//		`<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>`,
//		mathtok.WithMathDelimiters(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out) // [math] [frac] a b [end_frac] [end_math]
//
// Documents may be converted from readers, files or HTTP URLs, and many at
// once with ConvertAll.
package mathtok
