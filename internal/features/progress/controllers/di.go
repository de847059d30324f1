package progress_controllers

import (
	"sync"

	progress_services "projecttrack/internal/features/progress/services"
)

var (
	progressControllerOnce sync.Once
	progressController     *ProgressController
)

func GetProgressController() *ProgressController {
	progressControllerOnce.Do(func() {
		progressController = &ProgressController{
			progressService: progress_services.GetProgressService(),
		}
	})

	return progressController
}
