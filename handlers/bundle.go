package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers the router needs.
type HandlerBundle struct {
	// Generation endpoints
	GenerateSOPHandler    gin.HandlerFunc
	GetArchivedSOPHandler gin.HandlerFunc

	// Model status
	CheckModelHandler gin.HandlerFunc

	// Download endpoints
	DownloadTXTHandler  gin.HandlerFunc
	DownloadDOCXHandler gin.HandlerFunc
	DownloadPDFHandler  gin.HandlerFunc
}
