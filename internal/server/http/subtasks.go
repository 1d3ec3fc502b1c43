package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSubtaskList(c *gin.Context) {
	subtaskList, err := s.subtasks.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	result := make([]subtaskResponse, 0, len(subtaskList))
	for _, subtask := range subtaskList {
		result = append(result, toSubtaskResponse(subtask))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSubtaskGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	subtask, err := s.subtasks.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubtaskResponse(*subtask))
}

func (s *Server) handleSubtaskCreate(c *gin.Context) {
	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	subtask, err := s.subtasks.Create(c.Request.Context(), req.toInput())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubtaskResponse(*subtask))
}

func (s *Server) handleSubtaskUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	subtask, err := s.subtasks.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubtaskResponse(*subtask))
}

func (s *Server) handleSubtaskDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if err := s.subtasks.Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
