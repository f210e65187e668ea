package quizController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizroom/config"
	"quizroom/database"
	"quizroom/middleware"
	"quizroom/models"
	quizRoutes "quizroom/routers/quizRoutes"
	"quizroom/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

var userSeq int

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.ClassroomMembership{},
		&models.Quiz{},
		&models.Question{},
		&models.Submission{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	quizRoutes.SetupQuizRoutes(app)
	return app
}

func createUser(t *testing.T, role string) (models.User, string) {
	t.Helper()
	userSeq++
	user := models.User{
		FirstName:        "Quiz",
		LastName:         fmt.Sprintf("User%d", userSeq),
		Email:            fmt.Sprintf("quizuser%d@example.com", userSeq),
		Password:         "irrelevant",
		Role:             role,
		IsEmailConfirmed: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createClassroom(t *testing.T, teacherID uint) models.Classroom {
	t.Helper()
	classroom := models.Classroom{
		Name:      "Test classroom",
		Code:      utils.GenerateClassCode(),
		TeacherID: teacherID,
		IsActive:  true,
	}
	require.NoError(t, database.Database.Db.Create(&classroom).Error)
	return classroom
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// threeQuestionBody builds a quiz payload whose correct answers are
// option 0, 1 and 2 in stored order.
func threeQuestionBody(classroomID uint) fiber.Map {
	return fiber.Map{
		"title":       "Capitals",
		"classroomId": classroomID,
		"duration":    15,
		"startsOn":    time.Now().Add(-time.Minute),
		"questions": []fiber.Map{
			{"text": "Capital of France?", "options": []string{"Paris", "Rome", "Berlin"}, "correctAnswer": 0},
			{"text": "Capital of Italy?", "options": []string{"Paris", "Rome", "Berlin"}, "correctAnswer": 1},
			{"text": "Capital of Germany?", "options": []string{"Paris", "Rome", "Berlin"}, "correctAnswer": 2},
		},
	}
}

func createQuiz(t *testing.T, app *fiber.App, token string, body fiber.Map) models.Quiz {
	t.Helper()
	status, env := doRequest(t, app, http.MethodPost, "/quizzes", token, body)
	require.Equal(t, http.StatusCreated, status, env.Message)

	var quiz models.Quiz
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	return quiz
}

func TestCreateQuizWithQuestions(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)

	quiz := createQuiz(t, app, token, threeQuestionBody(classroom.ID))
	assert.Equal(t, "Capitals", quiz.Title)
	assert.Equal(t, classroom.ID, quiz.ClassroomID)
	assert.Equal(t, teacher.ID, quiz.TeacherID)
	assert.True(t, quiz.IsActive)
	assert.True(t, quiz.ShowResults, "showResults defaults to true")
	require.Len(t, quiz.Questions, 3)
	assert.Equal(t, []string{"Paris", "Rome", "Berlin"}, quiz.Questions[0].OptionList())
}

func TestCreateQuizClassroomNotFound(t *testing.T) {
	app := setupTest(t)
	_, token := createUser(t, models.RoleTeacher)

	status, _ := doRequest(t, app, http.MethodPost, "/quizzes", token, threeQuestionBody(99999))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateQuizEndsBeforeStarts(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)

	body := threeQuestionBody(classroom.ID)
	body["startsOn"] = time.Now().Add(time.Hour)
	body["endsOn"] = time.Now()

	status, _ := doRequest(t, app, http.MethodPost, "/quizzes", token, body)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestCreateQuizCorrectAnswerOutOfRange(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)

	body := threeQuestionBody(classroom.ID)
	body["questions"] = []fiber.Map{
		{"text": "Broken?", "options": []string{"a", "b"}, "correctAnswer": 5},
	}

	status, _ := doRequest(t, app, http.MethodPost, "/quizzes", token, body)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGetQuizStatusDerived(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)

	body := threeQuestionBody(classroom.ID)
	body["startsOn"] = time.Now().Add(time.Hour)
	quiz := createQuiz(t, app, token, body)

	status, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/%d", quiz.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var payload struct {
		Quiz   models.Quiz `json:"quiz"`
		Status string      `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, quiz.ID, payload.Quiz.ID)
	assert.Equal(t, models.QuizStatusScheduled, payload.Status)

	status, _ = doRequest(t, app, http.MethodGet, "/quizzes/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetQuizzesByClassroom(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	empty := createClassroom(t, teacher.ID)

	createQuiz(t, app, token, threeQuestionBody(classroom.ID))

	status, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/classroom/%d", classroom.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Count)

	// A classroom with no quizzes yet is reported as NotFound
	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/classroom/%d", empty.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func submit(t *testing.T, app *fiber.App, token string, quizID uint, answers []models.AnswerInput) models.Submission {
	t.Helper()
	status, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/quizzes/%d/submit", quizID), token,
		fiber.Map{"answers": answers})
	require.Equal(t, http.StatusOK, status, env.Message)

	var submission models.Submission
	require.NoError(t, json.Unmarshal(env.Data, &submission))
	return submission
}

func TestSubmitQuizScoring(t *testing.T) {
	app := setupTest(t)
	teacher, teacherToken := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, teacherToken, threeQuestionBody(classroom.ID))
	qs := quiz.Questions

	tests := []struct {
		name    string
		answers []models.AnswerInput
		want    int
	}{
		{
			name: "all correct",
			answers: []models.AnswerInput{
				{QuestionID: qs[0].ID, SelectedOption: 0},
				{QuestionID: qs[1].ID, SelectedOption: 1},
				{QuestionID: qs[2].ID, SelectedOption: 2},
			},
			want: 3,
		},
		{
			name: "one wrong",
			answers: []models.AnswerInput{
				{QuestionID: qs[0].ID, SelectedOption: 1},
				{QuestionID: qs[1].ID, SelectedOption: 1},
				{QuestionID: qs[2].ID, SelectedOption: 2},
			},
			want: 2,
		},
		{
			name: "short submission scores the answered prefix",
			answers: []models.AnswerInput{
				{QuestionID: qs[0].ID, SelectedOption: 0},
			},
			want: 1,
		},
		{
			name: "surplus answers are ignored",
			answers: []models.AnswerInput{
				{QuestionID: qs[0].ID, SelectedOption: 0},
				{QuestionID: qs[1].ID, SelectedOption: 1},
				{QuestionID: qs[2].ID, SelectedOption: 2},
				{QuestionID: 9999, SelectedOption: 2},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, studentToken := createUser(t, models.RoleStudent)
			submission := submit(t, app, studentToken, quiz.ID, tt.answers)
			assert.Equal(t, tt.want, submission.Score)
		})
	}
}

func TestSubmitQuizScoringIsPositional(t *testing.T) {
	app := setupTest(t)
	teacher, teacherToken := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, teacherToken, threeQuestionBody(classroom.ID))
	qs := quiz.Questions

	_, studentToken := createUser(t, models.RoleStudent)

	// Each answer names the right question id and its correct option, but
	// the list is reversed. Positional scoring compares option 2 against
	// question 0 and so on, so nothing matches.
	reversed := []models.AnswerInput{
		{QuestionID: qs[2].ID, SelectedOption: 2},
		{QuestionID: qs[1].ID, SelectedOption: 1},
		{QuestionID: qs[0].ID, SelectedOption: 0},
	}
	submission := submit(t, app, studentToken, quiz.ID, reversed)
	assert.Equal(t, 1, submission.Score, "only the middle answer lines up with its position")
}

func TestSubmitQuizNotFound(t *testing.T) {
	app := setupTest(t)
	_, studentToken := createUser(t, models.RoleStudent)

	status, _ := doRequest(t, app, http.MethodPost, "/quizzes/99999/submit", studentToken,
		fiber.Map{"answers": []models.AnswerInput{{SelectedOption: 0}}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuizLeaderboard(t *testing.T) {
	app := setupTest(t)
	teacher, teacherToken := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, teacherToken, threeQuestionBody(classroom.ID))
	qs := quiz.Questions

	// No submissions yet
	status, _ := doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/%d/leaderboard", quiz.ID), teacherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	answersFor := func(selected ...int) []models.AnswerInput {
		answers := make([]models.AnswerInput, len(selected))
		for i, s := range selected {
			answers[i] = models.AnswerInput{QuestionID: qs[i].ID, SelectedOption: s}
		}
		return answers
	}

	alice, aliceToken := createUser(t, models.RoleStudent)
	bob, bobToken := createUser(t, models.RoleStudent)
	carol, carolToken := createUser(t, models.RoleStudent)
	dave, daveToken := createUser(t, models.RoleStudent)

	submit(t, app, aliceToken, quiz.ID, answersFor(0, 1, 2)) // 3
	submit(t, app, bobToken, quiz.ID, answersFor(0, 0, 0))   // 1
	submit(t, app, carolToken, quiz.ID, answersFor(0, 1, 0)) // 2
	submit(t, app, daveToken, quiz.ID, answersFor(1, 1, 2))  // 2, after carol

	status, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/%d/leaderboard", quiz.ID), teacherToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, env.Count)

	var leaderboard []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal(env.Data, &leaderboard))
	require.Len(t, leaderboard, 4)

	assert.Equal(t, alice.ID, leaderboard[0].Student.ID)
	assert.Equal(t, 3, leaderboard[0].Score)
	// Carol and Dave tie on score; the earlier submission ranks first
	assert.Equal(t, carol.ID, leaderboard[1].Student.ID)
	assert.Equal(t, 2, leaderboard[1].Score)
	assert.Equal(t, dave.ID, leaderboard[2].Student.ID)
	assert.Equal(t, 2, leaderboard[2].Score)
	assert.Equal(t, bob.ID, leaderboard[3].Student.ID)
	assert.Equal(t, 1, leaderboard[3].Score)
	assert.Equal(t, alice.FullName(), leaderboard[0].Student.Name)
}

func TestUpdateQuizReplacesQuestions(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, token, threeQuestionBody(classroom.ID))

	oldIDs := make(map[uint]bool)
	for _, q := range quiz.Questions {
		oldIDs[q.ID] = true
	}

	status, env := doRequest(t, app, http.MethodPut, fmt.Sprintf("/quizzes/%d", quiz.ID), token, fiber.Map{
		"title": "Capitals v2",
		"questions": []fiber.Map{
			{"text": "Capital of Spain?", "options": []string{"Madrid", "Lisbon"}, "correctAnswer": 0},
			{"text": "Capital of Portugal?", "options": []string{"Madrid", "Lisbon"}, "correctAnswer": 1},
		},
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var updated models.Quiz
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Capitals v2", updated.Title)
	require.Len(t, updated.Questions, 2)
	for _, q := range updated.Questions {
		assert.False(t, oldIDs[q.ID], "replaced question id %d survived", q.ID)
	}

	var count int64
	database.Database.Db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUpdateQuizForbiddenForNonOwner(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	_, otherToken := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, token, threeQuestionBody(classroom.ID))

	status, _ := doRequest(t, app, http.MethodPut, fmt.Sprintf("/quizzes/%d", quiz.ID), otherToken,
		fiber.Map{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/quizzes/%d", quiz.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDeleteQuizCascadesQuestions(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	quiz := createQuiz(t, app, token, threeQuestionBody(classroom.ID))

	status, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/quizzes/%d", quiz.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/quizzes/%d", quiz.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var count int64
	database.Database.Db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGetTeacherQuizzes(t *testing.T) {
	app := setupTest(t)
	teacher, token := createUser(t, models.RoleTeacher)
	other, otherToken := createUser(t, models.RoleTeacher)
	classroom := createClassroom(t, teacher.ID)
	otherClassroom := createClassroom(t, other.ID)

	createQuiz(t, app, token, threeQuestionBody(classroom.ID))
	createQuiz(t, app, otherToken, threeQuestionBody(otherClassroom.ID))

	status, env := doRequest(t, app, http.MethodGet, "/quizzes/teacher", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Count)
}
