package command

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()

			format := output.FormatPlain
			if v := c.String("output"); v != "" {
				parsed, err := output.ParseFormat(v)
				if err != nil {
					return err
				}
				format = parsed
			}

			if format == output.FormatPlain {
				_, err := os.Stdout.WriteString(buildinfo.String() + "\n")
				return err
			}
			return output.NewFormatter(format, true).Format(os.Stdout, info)
		},
	}
}
