// Package files writes the artifacts produced by the exploration run.
//
// Outputs are written to a temporary file next to the destination and
// renamed into place once complete, so a failed render never leaves a
// truncated PNG or workbook behind.
//
// Example usage:
//
//	err := files.WriteAtomic("out/analysis.png", func(w io.Writer) error {
//	    _, err := canvas.WriteTo(w)
//	    return err
//	})
package files
