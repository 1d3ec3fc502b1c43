package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleTaskList(c *gin.Context) {
	details, err := s.tasks.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	result := make([]taskResponse, 0, len(details))
	for _, d := range details {
		result = append(result, toTaskResponse(d))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTaskGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	detail, err := s.tasks.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(*detail))
}

func (s *Server) handleTaskCreate(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	detail, err := s.tasks.Create(c.Request.Context(), input)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(*detail))
}

func (s *Server) handleTaskUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	detail, err := s.tasks.Update(c.Request.Context(), id, input)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(*detail))
}

func (s *Server) handleTaskDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
