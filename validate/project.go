package validate

import (
	"estate_market/model"

	"github.com/gofiber/fiber/v2"
)

func CreateProject() fiber.Handler {
	return Body[model.CreateProjectInput]("inputCreateProject")
}

func FilterProject() fiber.Handler {
	return Query[model.FilterProject]("inputFilterProject")
}

func CreateBuilding() fiber.Handler {
	return Body[model.CreateBuildingInput]("inputCreateBuilding")
}

func AddManager() fiber.Handler {
	return Body[model.AddManagerInput]("inputAddManager")
}

func UpdateManager() fiber.Handler {
	return Body[model.UpdateManagerInput]("inputUpdateManager")
}

func SubmitVerification() fiber.Handler {
	return Body[model.SubmitVerificationInput]("inputVerification")
}

func SubmitBuilderApplication() fiber.Handler {
	return Body[model.SubmitBuilderApplicationInput]("inputBuilderApplication")
}

func Review() fiber.Handler {
	return Body[model.ReviewInput]("inputReview")
}

func SendMessage() fiber.Handler {
	return Body[model.SendMessageInput]("inputSendMessage")
}
