package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"trustlens/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

// serveCmd exposes the analyzers over a RESTful API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run TrustLens as an HTTP API server",
	Long: `Starts an HTTP server exposing analysis and classification endpoints
for other tools or UIs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		router := gin.Default() // logger and recovery middleware

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			v1.POST("/analyze", apiHandler.AnalyzeHandler)
			v1.POST("/classify", apiHandler.ClassifyHandler)
			v1.POST("/classify-url", apiHandler.ClassifyURLHandler)
			v1.POST("/agents/run", apiHandler.RunAgentsHandler)
		}

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		addr := serveAddr
		if addr == "" {
			addr = appInstance.Config.Server.Addr
		}
		port := servePort
		if port == "" {
			port = appInstance.Config.Server.Port
		}

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Printf("Starting TrustLens API server on http://%s", listenAddr)
		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
