package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleContactList(c *gin.Context) {
	details, err := s.contacts.List(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	result := make([]contactResponse, 0, len(details))
	for _, d := range details {
		result = append(result, toContactResponse(d))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleContactGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	detail, err := s.contacts.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(*detail))
}

func (s *Server) handleContactCreate(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	detail, err := s.contacts.Create(c.Request.Context(), req.toInput())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(*detail))
}

func (s *Server) handleContactUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	detail, err := s.contacts.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(*detail))
}

func (s *Server) handleContactDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
