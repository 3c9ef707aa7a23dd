package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alphagrips/academy-backend/internal/category"
	categoryPostgres "github.com/alphagrips/academy-backend/internal/category/postgres"
	categoryDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/category"
)

func TestCategoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Postgres Suite")
}

var _ = Describe("Category Repository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
	})

	Describe("Create", func() {
		It("persists a category with timestamps", func() {
			c := &categoryDatamodel.Category{AcademyID: 1, Name: "Beginner", DisplayOrder: 1, IsActive: true}

			Expect(repo.Create(c)).To(Succeed())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.CreatedAt).NotTo(BeZero())
		})
	})

	Describe("GetByAcademy", func() {
		It("returns only the academy's rows ordered by display_order", func() {
			Expect(repo.Create(&categoryDatamodel.Category{AcademyID: 1, Name: "Advanced", DisplayOrder: 3, IsActive: true})).To(Succeed())
			Expect(repo.Create(&categoryDatamodel.Category{AcademyID: 1, Name: "Beginner", DisplayOrder: 1, IsActive: true})).To(Succeed())
			Expect(repo.Create(&categoryDatamodel.Category{AcademyID: 2, Name: "Beginner", DisplayOrder: 1, IsActive: true})).To(Succeed())

			categories, err := repo.GetByAcademy(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))
			Expect(categories[0].Name).To(Equal("Beginner"))
			Expect(categories[1].Name).To(Equal("Advanced"))
		})

		It("returns an empty slice for an academy with no categories", func() {
			categories, err := repo.GetByAcademy(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("deactivates without deleting", func() {
			c := &categoryDatamodel.Category{AcademyID: 1, Name: "Beginner", DisplayOrder: 1, IsActive: true}
			Expect(repo.Create(c)).To(Succeed())

			c.IsActive = false
			Expect(repo.Update(c)).To(Succeed())

			reloaded, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.IsActive).To(BeFalse())
		})
	})
})
