package cli

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/sheet"
)

func (c *CLI) sheetCommand() *cobra.Command {
	var (
		flags   configFlags
		by      string
		output  string
		columns int
		width   int
	)

	cmd := &cobra.Command{
		Use:   "sheet [config.json|-]",
		Short: "Render one config across every layout or color scheme",
		Long: `Render a contact sheet: the same text in every layout (--by layout) or every
color scheme (--by scheme), labelled and arranged in a grid. The output format
follows the file extension (.png or .jpg).`,
		Example: `  thumbforge sheet config.json -o layouts.png
  thumbforge sheet --headline "Big news" --by scheme --columns 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			dim, err := sheet.ParseBy(by)
			if err != nil {
				return err
			}
			cfg, err := flags.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			settings, err := c.config()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(settings)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			img, err := sheet.Build(renderer, cfg, sheet.Options{By: dim, Columns: columns, TileWidth: width})
			if err != nil {
				return err
			}
			if err := imaging.Save(img, output); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "save sheet %s", output)
			}
			prog.done(fmt.Sprintf("Rendered sheet by %s", dim))

			p := newPrinter(cmd)
			p.success("Contact sheet %s", StyleDim.Render(fmt.Sprintf("(%dx%d)", img.Bounds().Dx(), img.Bounds().Dy())))
			p.file(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&by, "by", string(sheet.ByLayout), "dimension to vary: layout or scheme")
	cmd.Flags().StringVarP(&output, "output", "o", "sheet.png", "output image")
	cmd.Flags().IntVar(&columns, "columns", sheet.DefaultColumns, "tiles per row")
	cmd.Flags().IntVar(&width, "tile-width", sheet.DefaultTileWidth, "tile width in pixels")
	return cmd
}
