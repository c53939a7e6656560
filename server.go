package main

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/excel"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/middlewares"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/models"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

// maxUploadSize bounds spreadsheet uploads; counted inventories for a
// full warehouse stay well under this.
const maxUploadSize = 20 << 20

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until the DB is ready, app endpoints return 503.
	r := gin.New()
	r.MaxMultipartMemory = maxUploadSize

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production requires an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); anywhere else all origins are allowed.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.POST("/auth/login", loginHandler())

	authorized := r.Group("/", middlewares.AuthMiddleware())
	authorized.POST("/users", userCreateHandler())
	authorized.POST("/inventory/upload", inventoryUploadHandler())
	authorized.GET("/inventory", inventoryListHandler())
	authorized.POST("/inventory/discrepancies", discrepancyReportHandler())
	authorized.POST("/inventory/count", directCountHandler())
	authorized.POST("/inventory/snapshots", snapshotCreateHandler())
	authorized.GET("/inventory/snapshots", snapshotListHandler())
	authorized.GET("/inventory/snapshots/:id", snapshotDetailHandler())
	authorized.POST("/warehouse-map/upload", warehouseMapUploadHandler())
	authorized.GET("/warehouse-map", warehouseMapListHandler())
	authorized.POST("/packages", packageCreateHandler())
	authorized.GET("/packages", packageListHandler())
	authorized.POST("/packages/:id/counts", postCountCreateHandler())
	authorized.GET("/package-counts", postCountListHandler())
	authorized.GET("/alerts", alertListHandler())

	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// userCreateHandler registers an account. Only the owner can create
// users; supervisors and operators get 403.
func userCreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := utils.GetRoleFromContext(c.Request.Context())
		if role != string(models.UserRoleOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "owner role required"})
			return
		}

		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		user, err := models.CreateUser(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// openUpload pulls the spreadsheet out of the multipart form. The form
// field is named "file".
func openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return nil, false
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return nil, false
	}
	return src, true
}

// writeLoadError maps spreadsheet parse failures to 400 responses. The
// missing-columns message enumerates the official column names.
func writeLoadError(c *gin.Context, err error) {
	var missing *excel.MissingColumnsError
	var malformed *excel.MalformedFileError
	if errors.As(err, &missing) || errors.As(err, &malformed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func inventoryUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		src, ok := openUpload(c)
		if !ok {
			return
		}
		defer src.Close()

		rows, err := excel.LoadInventory(src)
		if err != nil {
			writeLoadError(c, err)
			return
		}

		inserted, err := models.ReplaceInventory(c.Request.Context(), rows)
		if err != nil {
			config.LogError(logger, "server.go", "inventoryUploadHandler", "replacing inventory", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		snapshot, err := models.CreateSnapshot(c.Request.Context(), c.PostForm("snapshot_name"), rows)
		if err != nil {
			config.LogError(logger, "server.go", "inventoryUploadHandler", "creating snapshot", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"inserted": inserted,
			"snapshot": snapshot,
		})
	}
}

func inventoryListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := models.ListInventory(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		type itemView struct {
			*models.InventoryItem
			StockStatus string `json:"stock_status"`
		}
		views := make([]itemView, 0, len(items))
		for _, item := range items {
			views = append(views, itemView{InventoryItem: item, StockStatus: item.StockStatus()})
		}
		c.JSON(http.StatusOK, gin.H{"items": views, "count": len(views)})
	}
}

// writeReport renders rows as the styled xlsx download.
func writeReport(c *gin.Context, rows []excel.DiscrepancyRow) {
	content, err := excel.BuildDiscrepancyReport(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := excel.ReportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, excel.ReportContentType, content)
}

func discrepancyReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		src, ok := openUpload(c)
		if !ok {
			return
		}
		defer src.Close()

		counted, err := excel.LoadInventory(src)
		if err != nil {
			writeLoadError(c, err)
			return
		}

		rows, err := models.RunDiscrepancyReport(c.Request.Context(), counted)
		if err != nil {
			config.LogError(logger, "server.go", "discrepancyReportHandler", "reconciling", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeReport(c, rows)
	}
}

func directCountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.CountEntry
		if err := c.ShouldBindJSON(&entries); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count entries"})
			return
		}

		rows, err := models.BuildDiscrepanciesFromCounts(c.Request.Context(), entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeReport(c, rows)
	}
}

// snapshotCreateHandler captures an inventory file as a history snapshot
// without touching the live inventory.
func snapshotCreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		src, ok := openUpload(c)
		if !ok {
			return
		}
		defer src.Close()

		rows, err := excel.LoadInventory(src)
		if err != nil {
			writeLoadError(c, err)
			return
		}

		snapshot, err := models.CreateSnapshot(c.Request.Context(), c.PostForm("snapshot_name"), rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, snapshot)
	}
}

func snapshotListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshots, err := models.ListSnapshots(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
	}
}

func snapshotDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := models.GetSnapshotItems(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
	}
}

func warehouseMapUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		src, ok := openUpload(c)
		if !ok {
			return
		}
		defer src.Close()

		rows, err := excel.LoadWarehouseMap(src)
		if err != nil {
			writeLoadError(c, err)
			return
		}

		inserted, err := models.ReplaceWarehouseMap(c.Request.Context(), rows)
		if err != nil {
			config.LogError(logger, "server.go", "warehouseMapUploadHandler", "replacing warehouse map", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inserted": inserted})
	}
}

func warehouseMapListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		slots, err := models.ListWarehouseMap(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
	}
}

func packageCreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPackageReceipt
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "driver and plate are required"})
			return
		}

		receipt, err := models.CreatePackageReceipt(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, receipt)
	}
}

func packageListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.PackageReceiptFilter{
			Driver: c.Query("driver"),
			Plate:  c.Query("plate"),
			From:   c.Query("from"),
			To:     c.Query("to"),
		}
		receipts, stats, err := models.ListPackageReceipts(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"receipts": receipts, "stats": stats})
	}
}

func postCountCreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		receiptId, err := strconv.Atoi(c.Param("id"))
		if err != nil || receiptId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt id"})
			return
		}

		var input models.NewPostCount
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		registeredBy, _ := utils.GetUsernameFromContext(c.Request.Context())
		count, err := models.RegisterPostCount(c.Request.Context(), receiptId, registeredBy, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, count)
	}
}

func postCountListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := models.ListPostCounts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"counts": counts})
	}
}

func alertListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := models.GetAllAlerts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger logs only requests that recorded gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
