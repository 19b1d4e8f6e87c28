package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/service"
)

const confirmPage = `<!DOCTYPE html>
<html>
  <head><title>Install Sample Data</title></head>
  <body>
    <h1>Installing sample data</h1>
    <form method="post" action="/install_sample_data">
      <p>This deletes every existing record. Are you sure?</p>
      <input value="Yes" type="submit">
      <input value="No" type="button" onclick="window.location.pathname='/'">
    </form>
  </body>
</html>`

const installedPage = `<!DOCTYPE html>
<html>
  <head><title>Installed Sample Data</title></head>
  <body>
    <h1>Installed sample data successfully</h1>
    <p><a href="/">Home</a>
  </body>
</html>`

const failedPage = `<!DOCTYPE html>
<html>
  <head><title>Install Failed</title></head>
  <body>
    <h1>Sample data installation failed</h1>
    <p>Check the server logs for details.
  </body>
</html>`

// SampleDataHandler exposes the destructive sample-data reset behind an HTML
// confirmation form. It is never invoked automatically.
type SampleDataHandler struct {
	sampleData *service.SampleDataService
	log        zerolog.Logger
}

// NewSampleDataHandler creates a new SampleDataHandler.
func NewSampleDataHandler(sampleData *service.SampleDataService, log zerolog.Logger) *SampleDataHandler {
	return &SampleDataHandler{
		sampleData: sampleData,
		log:        log.With().Str("component", "sample_data_handler").Logger(),
	}
}

// ConfirmInstall godoc
// GET /install_sample_data
// Shows the confirmation form for the destructive reset.
func (h *SampleDataHandler) ConfirmInstall(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(confirmPage))
}

// Install godoc
// POST /install_sample_data
// Wipes the store and installs the fixture data.
func (h *SampleDataHandler) Install(c *gin.Context) {
	if err := h.sampleData.Install(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("sample data installation failed")
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(failedPage))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(installedPage))
}
