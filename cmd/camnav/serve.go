package main

import (
	"mime"
	"net/http"

	"fortio.org/log"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser build without caching",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mime.AddExtensionType(".wasm", "application/wasm"); err != nil {
			return err
		}
		log.Infof("Serving %s on %s", serveDir, serveAddr)
		return http.ListenAndServe(serveAddr, newFileServer(serveDir))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", ".", "Directory containing index.html and the wasm build")
}

func newFileServer(dir string) http.Handler {
	return &noCache{Handler: http.FileServer(http.Dir(dir))}
}

// noCache makes the browser refetch the wasm binary after each rebuild.
type noCache struct {
	http.Handler
}

func (h *noCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	h.Handler.ServeHTTP(w, r)
}
