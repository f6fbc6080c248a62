package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/mint"
	"github.com/Mohsinsiddi/w3mint/internal/server"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serveBind      string
	servePort      int
	serveAllowlist string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the contract snapshot, allowlist and token API",
	Long: `Run the HTTP API the storefront reads from BASE_URL:

  GET /api/contract-data/{field1,field2,...}   batched contract reads
  GET /api/allowlist/{address}                 {"address": ..., "verified": bool}
  GET /api/tokens?start=1&end=5&reverse=false  recently minted tokens
  GET /healthz

The allowlist is a YAML file with an "addresses" list, read once at start-up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := stderrLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := dial(ctx, log)
		if err != nil {
			return err
		}

		path := cfg.AllowlistPath()
		if serveAllowlist != "" {
			path = serveAllowlist
		}
		allowlist, err := config.LoadAllowlist(path)
		if err != nil {
			return err
		}

		addr := serveAddr()
		srv := server.New(log, addr,
			mint.NewReader(d.caller, cfg.Fields),
			allowlist,
			newFetcher(d, newHTTPClient()),
			cfg.GallerySize,
		)

		fmt.Println(ui.Banner(Version))
		fmt.Println(ui.Success(fmt.Sprintf("Serving %s on %s", ui.Addr(cfg.ContractAddress), ui.ChainName(d.chain.DisplayName))))
		fmt.Printf("  %s  %s\n", ui.Meta("API      :"), ui.Val("http://"+addr))
		fmt.Printf("  %s  %s\n", ui.Meta("Allowlist:"), ui.Val(fmt.Sprintf("%d address(es) from %s", allowlist.Len(), path)))
		fmt.Println(ui.Hint("Point the storefront at it with: BASE_URL=http://" + addr + " w3mint"))
		return srv.Run(ctx)
	},
}

func serveAddr() string {
	bind, port := cfg.Server.Bind, cfg.Server.Port
	if serveBind != "" {
		bind = serveBind
	}
	if servePort > 0 {
		port = servePort
	}
	return net.JoinHostPort(bind, strconv.Itoa(port))
}

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "listen address (default from config: 127.0.0.1)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config: 8787)")
	serveCmd.Flags().StringVar(&serveAllowlist, "allowlist", "", "allowlist YAML file (default: <config>/allowlist.yaml)")
}
