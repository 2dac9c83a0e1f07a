package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// DiningHandler holds the dining recommendation service dependency.
type DiningHandler struct {
	diningService service.DiningService
}

// NewDiningHandler creates a new DiningHandler.
func NewDiningHandler(diningService service.DiningService) *DiningHandler {
	return &DiningHandler{diningService: diningService}
}

// --- DTOs ---

type TopMealsRequest struct {
	Goal string `json:"goal"`
	TopN int    `json:"top_n" binding:"omitempty,min=1,max=50"`
}

type TopMealsResponse struct {
	Goal            string `json:"goal"`
	Recommendations string `json:"recommendations"`
}

// --- Handler Methods ---

// TopMeals godoc
// @Summary Recommend dining hall meals for a training goal
// @Description Fetches today's menus and asks the model for the best meals. Goal defaults to "cutting".
// @Tags Dining
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TopMealsRequest true "Goal and result count"
// @Success 200 {object} TopMealsResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Recommendations unavailable"
// @Router /dining/top-meals [post]
func (h *DiningHandler) TopMeals(c *gin.Context) {
	var req TopMealsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal := req.Goal
	if goal == "" {
		goal = "cutting"
	}

	recommendations, err := h.diningService.TopMeals(c.Request.Context(), goal, req.TopN)
	if err != nil {
		// Upstream details stay in the logs; clients get a generic message.
		log.Printf("ERROR: dining recommendation failed: %v", err)
		if errors.Is(err, service.ErrDiningUnavailable) {
			abortWithError(c, http.StatusInternalServerError, "Dining recommendations are currently unavailable")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to build dining recommendations")
		return
	}

	c.JSON(http.StatusOK, TopMealsResponse{
		Goal:            goal,
		Recommendations: recommendations,
	})
}
