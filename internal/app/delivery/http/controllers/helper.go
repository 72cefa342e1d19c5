package controllers

import (
	"context"
	"errors"
	"net/http"
	"sleepclinic-service/internal/pkg/exceptions"
	"sleepclinic-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
