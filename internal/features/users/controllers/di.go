package users_controllers

import (
	users_services "projecttrack/internal/features/users/services"
)

var userController = &UserController{
	userService: users_services.GetUserService(),
}
var managementController = &ManagementController{
	managementService: users_services.GetManagementService(),
	directoryService:  users_services.GetDirectoryService(),
}
var settingsController = &SettingsController{
	settingsService: users_services.GetSettingsService(),
}

func GetUserController() *UserController {
	return userController
}

func GetManagementController() *ManagementController {
	return managementController
}

func GetSettingsController() *SettingsController {
	return settingsController
}
