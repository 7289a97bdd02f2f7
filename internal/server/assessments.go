package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/GlucoRisk/internal/risk"
)

type assessmentRequest struct {
	Pregnancies            float64 `json:"pregnancies"`
	Glucose                float64 `json:"glucose"`
	BloodPressure          float64 `json:"bloodPressure"`
	SkinThickness          float64 `json:"skinThickness"`
	Insulin                float64 `json:"insulin"`
	BMI                    float64 `json:"bmi"`
	Age                    float64 `json:"age"`
	ImmediateFamilyHistory string  `json:"immediateFamilyHistory" binding:"omitempty,oneof=yes no"`
	ExtendedFamilyHistory  string  `json:"extendedFamilyHistory" binding:"omitempty,oneof=yes no"`
}

// profile converts the request; an omitted family history means "no".
func (r assessmentRequest) profile() risk.HealthProfile {
	return risk.HealthProfile{
		Pregnancies:            r.Pregnancies,
		Glucose:                r.Glucose,
		BloodPressure:          r.BloodPressure,
		SkinThickness:          r.SkinThickness,
		Insulin:                r.Insulin,
		BMI:                    r.BMI,
		Age:                    r.Age,
		ImmediateFamilyHistory: history(r.ImmediateFamilyHistory),
		ExtendedFamilyHistory:  history(r.ExtendedFamilyHistory),
	}
}

func history(v string) risk.FamilyHistory {
	if v == string(risk.HistoryYes) {
		return risk.HistoryYes
	}
	return risk.HistoryNo
}

type predictionResponse struct {
	UserName string `json:"userName,omitempty"`
	risk.Result
}

func (h *handlers) validateAssessment(c *gin.Context) {
	var payload assessmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fe := risk.Validate(payload.profile())
	c.JSON(http.StatusOK, gin.H{
		"valid":  fe.Empty(),
		"errors": fe.Messages(),
	})
}

func (h *handlers) predict(c *gin.Context) {
	var payload assessmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, fe := risk.Assess(payload.profile())
	if !fe.Empty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": fe.Messages(),
		})
		return
	}

	resp := predictionResponse{Result: result}
	if claims := h.bearerClaims(c); claims != nil {
		resp.UserName = claims.Name
	}
	c.JSON(http.StatusOK, resp)
}
