package classroomController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizroom/database"
	"quizroom/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRetryTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Classroom{}))
	database.Database = database.DbInstance{Db: db}
	return db
}

// Drives CreateClassroom through a code collision: the first candidate
// duplicates an existing classroom's code, the insert fails on the
// unique index and the handler must regenerate and insert cleanly.
func TestCreateClassroomRetriesOnDuplicateCode(t *testing.T) {
	db := setupRetryTest(t)

	teacher := models.User{
		FirstName: "Retry", LastName: "Teacher", Email: "retry@example.com",
		Password: "irrelevant", Role: models.RoleTeacher, IsEmailConfirmed: true,
	}
	require.NoError(t, db.Create(&teacher).Error)

	taken := models.Classroom{Name: "Taken", Code: "AAAAAA", TeacherID: teacher.ID, IsActive: true}
	require.NoError(t, db.Create(&taken).Error)

	draws := 0
	candidates := []string{"AAAAAA", "BBBBBB"}
	orig := generateClassCode
	generateClassCode = func() string {
		code := candidates[draws%len(candidates)]
		draws++
		return code
	}
	defer func() { generateClassCode = orig }()

	app := fiber.New()
	app.Post("/classrooms", func(c *fiber.Ctx) error {
		c.Locals("userId", teacher.ID)
		c.Locals("validatedClassroom", &models.CreateClassroomRequest{Name: "Second try"})
		return c.Next()
	}, CreateClassroom)

	req := httptest.NewRequest(http.MethodPost, "/classrooms", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)

	var created models.Classroom
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "BBBBBB", created.Code)
	assert.Equal(t, 2, draws, "one collision, one clean insert")
	assert.NotEqual(t, taken.ID, created.ID, "collision row must not be reused as an update")

	var count int64
	db.Model(&models.Classroom{}).Where("code = ?", "BBBBBB").Count(&count)
	assert.EqualValues(t, 1, count)
}
