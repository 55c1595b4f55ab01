package server

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestId())
	router.Use(Logger())
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	apiV1 := router.Group("/api/v1")
	s.SetUpApiV1Router(apiV1)

	return router
}

func (s *Server) SetUpApiV1Router(apiV1 *gin.RouterGroup) {
	apiV1.POST("/payload", s.handleIngestPayload)

	apiV1.POST("/interval", s.handleIngestInterval)
	v1Interval := apiV1.Group("/interval")
	v1Interval.Use(SetIntervalToContext())
	v1Interval.GET("/:interval_id", s.handleGetInterval)
	v1Interval.POST("/:interval_id/reverify", s.handleReverifyInterval)

	v1Employee := apiV1.Group("/employee/:employee_id")
	v1Employee.GET("/timeline", s.handleEmployeeTimeline)
	v1Employee.GET("/session/today", s.handleEmployeeSessionToday)
	v1Employee.GET("/sessions", s.handleEmployeeSessions)
	v1Employee.GET("/stats/today", s.handleEmployeeStatsToday)
	v1Employee.GET("/stats/summary", s.handleEmployeeStatsSummary)
	v1Employee.GET("/stats/weekly", s.handleEmployeeStatsWeekly)
	v1Employee.GET("/stats/daily", s.handleEmployeeStatsDaily)

	v1Session := apiV1.Group("/session/:session_id")
	v1Session.Use(SetSessionToContext())
	v1Session.GET("/apps", s.handleSessionApps)
	v1Session.GET("/tasks", s.handleSessionTasks)
	v1Session.GET("/screenshots", s.handleSessionScreenshots)
	v1Session.GET("/headshots", s.handleSessionHeadshots)

	apiV1.GET("/stats/team", s.handleTeamStats)
	apiV1.GET("/task/:task_id/activity", s.handleTaskActivity)
}
