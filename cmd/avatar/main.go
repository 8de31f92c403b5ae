package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cshum/vipsgen/vips"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"letteravatar/internal/avatar"
	"letteravatar/internal/cache"
	"letteravatar/internal/config"
	"letteravatar/internal/image_encoder"
	"letteravatar/internal/image_renderer"
)

type renderFlags struct {
	name       string
	size       int
	background string
	foreground string
	format     string
	shape      string
	fontFile   string
	output     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "avatar",
		Short:        "Generate letter avatars",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the avatar of a name to a file or stdout",
		Example: `  avatar render --name "Ada Lovelace" --size 128 --shape circle -o ada.png
  avatar render --name "Grace Hopper" --format webp > grace.webp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "display name to take the initials from")
	cmd.Flags().IntVar(&flags.size, "size", 64, "edge length of the square image in pixels")
	cmd.Flags().StringVar(&flags.background, "background", "", "background color, palette pick when empty")
	cmd.Flags().StringVar(&flags.foreground, "foreground", "", "text color, white when empty")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format (png, jpeg, gif, bmp, tiff, webp), guessed from --output when empty")
	cmd.Flags().StringVar(&flags.shape, "shape", "square", "background shape (square or circle)")
	cmd.Flags().StringVar(&flags.fontFile, "font", "", "TrueType/OpenType font file, Go Regular when empty")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, stdout when empty")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runRender(flags *renderFlags, stdout io.Writer) error {
	if flags.size < config.DefaultMinSize || flags.size > config.DefaultMaxSize {
		return fmt.Errorf("invalid size %d: must be between %d and %d", flags.size, config.DefaultMinSize, config.DefaultMaxSize)
	}

	format := flags.format
	if format == "" && flags.output != "" {
		if f, ok := image_encoder.ParseFormat(filepath.Ext(flags.output)); ok {
			format = f.String()
		}
	}

	opts := avatar.Resolve(avatar.Params{
		Name:            flags.name,
		Size:            flags.size,
		BackgroundColor: flags.background,
		ForegroundColor: flags.foreground,
		Format:          format,
		Shape:           flags.shape,
	})

	if opts.Format == image_encoder.FormatJPEG || opts.Format == image_encoder.FormatWebP {
		vips.Startup(nil)
		defer vips.Shutdown()
	}

	font, err := image_renderer.LoadFont(flags.fontFile)
	if err != nil {
		return err
	}

	renderer := image_renderer.New(font, cache.NewNoopCache(), zap.NewNop())
	result, err := renderer.Render(opts)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err = stdout.Write(result.Data)
		return err
	}
	return os.WriteFile(flags.output, result.Data, 0644)
}
