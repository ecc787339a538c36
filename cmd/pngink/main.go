// Command pngink hides, inspects and removes custom chunks in PNG files.
package main

import (
	"fmt"
	"os"

	"github.com/pngink/pngink"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pngink",
		Short:         "Hide, inspect and remove custom chunks in PNG files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newRemoveCmd(),
		newPrintCmd(),
		newScanCmd(),
	)
	return root
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <file> <type> <message> [output]",
		Short: "Append a text chunk to a PNG file",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := loadPNG(args[0])
			if err != nil {
				return err
			}

			chunk, err := pngink.NewTextChunk(args[1], args[2])
			if err != nil {
				return err
			}
			png.AppendChunk(chunk)

			out := args[0]
			if len(args) == 4 {
				out = args[3]
			}
			if err := writePNG(png, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "writing %s\n", out)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file> <type>",
		Short: "Print the message stored in the first chunk of the given type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := loadPNG(args[0])
			if err != nil {
				return err
			}

			chunk := png.ChunkByType(args[1])
			if chunk == nil {
				return fmt.Errorf("no chunk of type %q in %s", args[1], args[0])
			}
			text, err := chunk.Text()
			if err != nil {
				return fmt.Errorf("chunk %q: %w", args[1], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file> <type> [output]",
		Short: "Remove the first chunk of the given type",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := loadPNG(args[0])
			if err != nil {
				return err
			}

			if _, err := png.RemoveChunk(args[1]); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := args[0]
			if len(args) == 3 {
				out = args[2]
			}
			if err := writePNG(png, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "writing %s\n", out)
			return nil
		},
	}
}

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "List all chunks in a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := loadPNG(args[0])
			if err != nil {
				return err
			}

			for i, chunk := range png.Chunks() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %s  %6d bytes  crc 0x%08x\n",
					i, chunk.Type(), props(chunk.Type()), chunk.Length(), chunk.CRC())
			}
			return nil
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "Print every chunk whose data is readable text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := loadPNG(args[0])
			if err != nil {
				return err
			}

			for i, chunk := range png.Chunks() {
				if text, err := chunk.Text(); err == nil && len(text) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%d - %s - %s\n", i, chunk.Type(), text)
				}
			}
			return nil
		},
	}
}

// props renders the four case-encoded type properties as a compact
// flag string: critical, public, reserved bit, safe-to-copy.
func props(typ pngink.ChunkType) string {
	flags := []byte("----")
	if typ.IsCritical() {
		flags[0] = 'c'
	}
	if typ.IsPublic() {
		flags[1] = 'p'
	}
	if typ.ReservedBitSet() {
		flags[2] = 'r'
	}
	if typ.IsSafeToCopy() {
		flags[3] = 's'
	}
	return string(flags)
}

func loadPNG(path string) (*pngink.PNG, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	png, err := pngink.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return png, nil
}

func writePNG(png *pngink.PNG, path string) error {
	return os.WriteFile(path, png.Bytes(), 0644)
}
