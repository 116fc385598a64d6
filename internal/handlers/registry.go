package handlers

type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	ProfileHandler     *ProfileHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	InterviewHandler   *InterviewHandler
	AnalyticsHandler   *AnalyticsHandler
	FileHandler        *FileHandler
}
