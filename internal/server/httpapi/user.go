package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListUsers(c *gin.Context) {
	record, ok := s.decodeRecord(c, "commonSchema")
	if !ok {
		return
	}

	list, err := s.users.ListByCourse(c.Request.Context(), schemas.String(record, "courseCode"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, "Users not found")
			return
		}
		s.writeError(c, err)
		return
	}

	// Password hashes never leave the service.
	out := make([]gin.H, 0, len(list))
	for _, u := range list {
		out = append(out, gin.H{
			"role":        u.Role,
			"regNo":       u.RegNo,
			"fullNames":   u.FullNames,
			"courseCode":  u.CourseCode,
			"courseTitle": u.CourseTitle,
			"year":        u.Year,
			"blocked":     u.Blocked,
		})
	}
	s.respond(c, http.StatusOK, gin.H{"users": out})
}

func (s *Server) handleBlockUser(c *gin.Context) {
	record, ok := s.decodeRecord(c, "blockSchema")
	if !ok {
		return
	}

	regNo := schemas.String(record, "regNo")
	action, isBool := record["action"].(bool)
	if !isBool {
		s.reject(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := s.users.SetBlocked(c.Request.Context(), regNo, action); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusBadRequest, fmt.Sprintf("User %s not found", regNo))
			return
		}
		s.writeError(c, err)
		return
	}

	verb := "unblocked"
	if action {
		verb = "blocked"
	}
	s.respond(c, http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Successfully %s user %s", verb, regNo),
	})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	record, ok := s.decodeRecord(c, "deleteUserSchema")
	if !ok {
		return
	}

	regNo := schemas.String(record, "regNo")
	if err := s.users.Delete(c.Request.Context(), regNo); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusBadRequest, fmt.Sprintf("User %s not found", regNo))
			return
		}
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Successfully deleted user %s", regNo),
	})
}
