package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"formsight/internal/cache"
	"formsight/internal/config"
	"formsight/internal/model"
	"formsight/internal/repository"
	"formsight/internal/service"
	"formsight/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func points(v float64) *float64 { return &v }

func demoForm(ownerID string) *model.Form {
	return &model.Form{
		OwnerID:     ownerID,
		Title:       "Smartphone Launch Quiz",
		Description: "How well do you know the new device?",
		IsQuiz:      true,
		Pages: []model.Page{
			{
				Title: "Hardware",
				Questions: []model.Question{
					{
						Type:           model.QuestionMultipleChoice,
						Title:          "Which chip powers the phone?",
						Options:        []string{"A17", "Snapdragon 8 Gen 3", "Tensor G3"},
						CorrectAnswers: []model.CorrectAnswer{model.CorrectOption(1)},
						IsRequired:     true,
						IsScored:       true,
					},
					{
						Type:             model.QuestionCheckbox,
						Title:            "Which colours ship at launch?",
						Options:          []string{"Black", "Silver", "Gold", "Green"},
						CorrectAnswers:   []model.CorrectAnswer{model.CorrectOption(0), model.CorrectOption(1)},
						AllowOtherAnswer: true,
						IsScored:         true,
						Score:            points(2),
					},
				},
			},
			{
				Title: "Feedback",
				Questions: []model.Question{
					{
						Type:            model.QuestionRating,
						Title:           "How satisfied are you overall?",
						RatingCharacter: "star",
						RatingScale:     6,
					},
					{Type: model.QuestionDate, Title: "When did you buy it?"},
					{Type: model.QuestionShortText, Title: "What would you improve?"},
				},
			},
		},
	}
}

var demoResponses = []map[string]interface{}{
	{"q1": "Snapdragon 8 Gen 3", "q2": []string{"Black", "Silver"}, "q3": 5, "q4": "2024-02-10", "q5": "Battery life"},
	{"q1": "A17", "q2": []string{"Gold"}, "q3": 3, "q5": "Cheaper cases"},
	{"q1": "Snapdragon 8 Gen 3", "q2": []string{"Black", "other"}, "q3": 4, "q4": "2024-03-02"},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Init(logger.Options{Level: "info"})
	defer logger.Log.Sync()

	configPath := os.Getenv("FORMSIGHT_CONFIG_PATH")
	if configPath == "" {
		configPath = "configs"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Failed to load config", zap.Error(err))
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	formRepo := repository.NewFormRepo(db)
	subRepo := repository.NewSubmissionRepo(db)

	formSvc := service.NewFormService(formRepo)
	submissionSvc := service.NewSubmissionService(formRepo, subRepo, cache.NewMemoryPresentationCache(time.Hour), service.SubmissionOptions{
		Precision: cfg.Scoring.Precision,
	})

	ownerID := os.Getenv("SEED_OWNER_ID")
	if ownerID == "" {
		ownerID = "owner_demo"
	}
	form, err := formSvc.Create(ctx, demoForm(ownerID))
	if err != nil {
		logger.Log.Fatal("Failed to create form", zap.Error(err))
	}

	for i, answers := range demoResponses {
		p, err := submissionSvc.Present(ctx, form.ID)
		if err != nil {
			logger.Log.Fatal("Failed to present form", zap.Error(err))
		}
		req := service.SubmitRequest{PresentationID: p.ID, Responses: map[string]json.RawMessage{}}
		for name, v := range answers {
			data, _ := json.Marshal(v)
			req.Responses[name] = data
		}
		if i == 2 {
			req.OtherText = map[string]string{"q2": "Midnight blue"}
		}
		sub, err := submissionSvc.Submit(ctx, form.ID, req)
		if err != nil {
			logger.Log.Fatal("Failed to submit demo response", zap.Int("response", i+1), zap.Error(err))
		}
		fmt.Printf("Submission %s scored %.2f\n", sub.ID, *sub.TotalScore)
	}

	fmt.Printf("Successfully created demo quiz '%s' (%s) for owner '%s'\n", form.Title, form.ID, ownerID)
}
