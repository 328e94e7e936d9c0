package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/dgitonga/qrollcall/internal/schemas"
	"github.com/dgitonga/qrollcall/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleRegister(c *gin.Context) {
	record, ok := s.decodeRecord(c, "registrationSchema")
	if !ok {
		return
	}

	regNo := schemas.String(record, "regNo")
	err := s.access.Register(c.Request.Context(), services.RegisterParams{
		Role:       schemas.String(record, "role"),
		RegNo:      regNo,
		NationalID: schemas.String(record, "nationalId"),
		FullNames:  schemas.String(record, "fullNames"),
		Password:   schemas.String(record, "password"),
		CourseCode: schemas.String(record, "courseCode"),
		Year:       schemas.String(record, "year"),
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyExists):
			s.reject(c, http.StatusBadRequest, fmt.Sprintf("User %s already exists", regNo))
		case errors.Is(err, common.ErrNotFound):
			s.reject(c, http.StatusBadRequest,
				fmt.Sprintf("Course %s does not exist", schemas.String(record, "courseCode")))
		default:
			s.writeError(c, err)
		}
		return
	}

	s.respond(c, http.StatusCreated, gin.H{
		"message": fmt.Sprintf("User %s registered successfully", regNo),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	record, ok := s.decodeRecord(c, "loginSchema")
	if !ok {
		return
	}

	user, pair, err := s.access.Login(c.Request.Context(),
		schemas.String(record, "role"),
		schemas.String(record, "regNo"),
		schemas.String(record, "password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			s.reject(c, http.StatusNotFound, "User not found")
		case errors.Is(err, common.ErrUnauthorized):
			s.reject(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			s.writeError(c, err)
		}
		return
	}

	s.respond(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"role":        user.Role,
			"regNo":       user.RegNo,
			"fullNames":   user.FullNames,
			"courseCode":  user.CourseCode,
			"courseTitle": user.CourseTitle,
			"year":        user.Year,
		},
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	record, ok := s.decodeRecord(c, "refreshSchema")
	if !ok {
		return
	}

	pair, err := s.access.Refresh(c.Request.Context(), schemas.String(record, "refreshToken"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.respond(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}
