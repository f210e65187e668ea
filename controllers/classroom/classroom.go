package classroomController

import (
	"errors"
	"log"
	"time"

	"quizroom/database"
	"quizroom/middleware"
	"quizroom/models"
	"quizroom/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the join-code retry loop so a broken unique
// index cannot spin the handler forever.
const maxCodeAttempts = 25

// generateClassCode is swappable so tests can force code collisions.
var generateClassCode = utils.GenerateClassCode

// CreateClassroom creates a classroom owned by the acting teacher. The
// join code is generated and inserted under the unique index on the
// code column; a duplicate-key conflict regenerates and retries instead
// of failing, so two concurrent creations can never share a code.
func CreateClassroom(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedClassroom").(*models.CreateClassroomRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	classroom := models.Classroom{
		Name:        reqData.Name,
		Description: reqData.Description,
		TeacherID:   userID,
		IsActive:    true,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		classroom.Code = generateClassCode()
		err := database.Database.Db.Create(&classroom).Error
		if err == nil {
			return middleware.JsonResponse(c, fiber.StatusCreated, true, "Classroom created successfully!", classroom)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			classroom.ID = 0 // fresh insert on the next attempt
			continue
		}
		log.Printf("Error creating classroom: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create classroom!", nil)
	}

	log.Printf("Exhausted %d join-code attempts for teacher %d", maxCodeAttempts, userID)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to allocate a unique classroom code!", nil)
}

// GetTeacherClassrooms lists the classrooms owned by the acting teacher.
func GetTeacherClassrooms(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var classrooms []models.Classroom
	err := database.Database.Db.
		Where("teacher_id = ?", userID).
		Preload("Teacher").
		Order("created_at desc").
		Find(&classrooms).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classrooms!", nil)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Classrooms fetched successfully!", len(classrooms), classrooms)
}

// GetStudentClassrooms lists the classrooms the acting student joined
// via the membership ledger.
func GetStudentClassrooms(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var classrooms []models.Classroom
	err := database.Database.Db.
		Joins("JOIN classroom_memberships ON classroom_memberships.classroom_id = classrooms.id").
		Where("classroom_memberships.student_id = ?", userID).
		Preload("Teacher").
		Find(&classrooms).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classrooms!", nil)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Classrooms fetched successfully!", len(classrooms), classrooms)
}

// GetClassroomByID returns a classroom with its teacher, member list
// and quiz titles.
func GetClassroomByID(c *fiber.Ctx) error {
	classroomID := c.Locals("classroomID").(uint)

	var classroom models.Classroom
	if err := database.Database.Db.Preload("Teacher").First(&classroom, classroomID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	members, err := fetchMembers(database.Database.Db, classroom.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	var quizzes []models.QuizSummary
	if err := database.Database.Db.Model(&models.Quiz{}).
		Select("id, title").
		Where("classroom_id = ?", classroom.ID).
		Scan(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classroom fetched successfully!", fiber.Map{
		"classroom": classroom,
		"members":   members,
		"quizzes":   quizzes,
	})
}

// UpdateClassroom updates name/description. Only the owning teacher may
// update.
func UpdateClassroom(c *fiber.Ctx) error {
	classroomID := c.Locals("classroomID").(uint)

	reqData, ok := c.Locals("validatedClassroomUpdate").(*models.UpdateClassroomRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var classroom models.Classroom
	if err := database.Database.Db.First(&classroom, classroomID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	if !middleware.Owns(c, classroom.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this classroom!", nil)
	}

	if reqData.Name != "" {
		classroom.Name = reqData.Name
	}
	if reqData.Description != "" {
		classroom.Description = reqData.Description
	}

	if err := database.Database.Db.Save(&classroom).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classroom updated successfully!", classroom)
}

// DeleteClassroom removes the classroom and its dependents. Memberships,
// quizzes and their questions go with it in one transaction; the
// submission ledger is append-only and stays.
func DeleteClassroom(c *fiber.Ctx) error {
	classroomID := c.Locals("classroomID").(uint)

	var classroom models.Classroom
	if err := database.Database.Db.First(&classroom, classroomID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	if !middleware.Owns(c, classroom.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this classroom!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&models.Quiz{}).Where("classroom_id = ?", classroom.ID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("classroom_id = ?", classroom.ID).Delete(&models.Quiz{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("classroom_id = ?", classroom.ID).Delete(&models.ClassroomMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&classroom).Error
	})
	if err != nil {
		log.Printf("Error deleting classroom %d: %v", classroom.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classroom removed", nil)
}

// JoinClassroom enrolls the acting student into the classroom matching
// the submitted join code.
func JoinClassroom(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedJoin").(*models.JoinClassroomRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var classroom models.Classroom
	if err := database.Database.Db.Where("code = ?", reqData.Code).First(&classroom).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	var existing models.ClassroomMembership
	if err := database.Database.Db.
		Where("classroom_id = ? AND student_id = ?", classroom.ID, userID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already joined this classroom!", nil)
	}

	membership := models.ClassroomMembership{
		ClassroomID: classroom.ID,
		StudentID:   userID,
		JoinedAt:    time.Now(),
	}
	if err := database.Database.Db.Create(&membership).Error; err != nil {
		// Concurrent double-join lands here via the composite unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already joined this classroom!", nil)
		}
		log.Printf("Error creating membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined classroom successfully!", classroom)
}

// RemoveStudent deletes a membership. Only the owning teacher may
// remove; removing a non-member is NotFound. Returns the refreshed
// member list.
func RemoveStudent(c *fiber.Ctx) error {
	classroomID := c.Locals("classroomID").(uint)

	reqData, ok := c.Locals("validatedRemoveStudent").(*models.RemoveStudentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var classroom models.Classroom
	if err := database.Database.Db.First(&classroom, classroomID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	if !middleware.Owns(c, classroom.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to remove students from this classroom!", nil)
	}

	var membership models.ClassroomMembership
	err := database.Database.Db.
		Where("classroom_id = ? AND student_id = ?", classroom.ID, reqData.StudentID).
		First(&membership).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not a member of this classroom!", nil)
	}

	if err := database.Database.Db.Delete(&membership).Error; err != nil {
		log.Printf("Error removing membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove student!", nil)
	}

	members, err := fetchMembers(database.Database.Db, classroom.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student removed successfully!", fiber.Map{
		"classroom": classroom,
		"members":   members,
	})
}

// fetchMembers joins the membership ledger with the identity store to
// produce the denormalized member list.
func fetchMembers(db *gorm.DB, classroomID uint) ([]models.ClassroomMember, error) {
	members := make([]models.ClassroomMember, 0)
	err := db.Table("classroom_memberships").
		Select("classroom_memberships.id AS membership_id, users.id AS student_id, users.first_name, users.last_name, users.email, classroom_memberships.joined_at").
		Joins("JOIN users ON users.id = classroom_memberships.student_id AND users.deleted_at IS NULL").
		Where("classroom_memberships.classroom_id = ?", classroomID).
		Order("classroom_memberships.joined_at asc").
		Scan(&members).Error
	return members, err
}
