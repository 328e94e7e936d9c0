package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateCourse(c *gin.Context) {
	record, ok := s.decodeRecord(c, "courseSchema")
	if !ok {
		return
	}

	code := schemas.String(record, "courseCode")
	err := s.catalog.AddCourse(c.Request.Context(), code,
		schemas.String(record, "courseTitle"),
		schemas.String(record, "courseLevel"),
	)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.reject(c, http.StatusBadRequest, fmt.Sprintf("Course %s already exists", code))
			return
		}
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusCreated, gin.H{"message": "Course added successfully"})
}

func (s *Server) handleListCourses(c *gin.Context) {
	list, err := s.catalog.ListCourses(c.Request.Context())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, "Courses not found")
			return
		}
		s.writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, course := range list {
		out = append(out, gin.H{
			"courseCode":  course.CourseCode,
			"courseTitle": course.CourseTitle,
			"courseLevel": course.CourseLevel,
		})
	}
	s.respond(c, http.StatusOK, gin.H{"courses": out})
}

func (s *Server) handleDeleteCourse(c *gin.Context) {
	record, ok := s.decodeRecord(c, "commonSchema")
	if !ok {
		return
	}

	code := schemas.String(record, "courseCode")
	if err := s.catalog.DeleteCourse(c.Request.Context(), code); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.reject(c, http.StatusNotFound, fmt.Sprintf("Course %s not found", code))
			return
		}
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusOK, gin.H{"message": "Course and associated units deleted successfully"})
}
