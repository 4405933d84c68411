package controllers

import (
	"fmt"

	"educa/database"
	"educa/logger"
	courseModels "educa/models/course"
	courseRepository "educa/repositories/course"
	"educa/utils"
	courseValidator "educa/validators/course"
	"educa/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type contentRow struct {
	Content courseModels.Content
	Item    courseModels.Item
}

func moduleContentsPath(moduleID uint) string {
	return fmt.Sprintf("/course/module/%d", moduleID)
}

// OwnedItem loads the item in "itemID" of kind "itemKind" for its owner into "item"
func OwnedItem(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	kind := c.Locals("itemKind").(courseModels.ItemKind)
	itemID := c.Locals("itemID").(uint)

	item, err := courseRepository.GetOwnedItem(database.Database.Db, kind, itemID, userId)
	if err != nil {
		return lookupError(c, err)
	}
	c.Locals("item", item)
	return c.Next()
}

// ModuleContentList shows the course's modules next to the contents of one module
func ModuleContentList(c *fiber.Ctx) error {
	module := c.Locals("module").(*courseModels.Module)
	db := database.Database.Db

	modules, err := courseRepository.ListCourseModules(db, module.CourseID)
	if err != nil {
		return err
	}
	contents, err := courseRepository.ListModuleContents(db, module.ID)
	if err != nil {
		return err
	}
	items, err := courseRepository.LoadItems(db, contents)
	if err != nil {
		return err
	}

	rows := make([]contentRow, 0, len(contents))
	for _, content := range contents {
		item, ok := items[content.ID]
		if !ok {
			logger.Log.Warn("content points at a missing item",
				zap.Uint("contentId", content.ID),
				zap.String("itemType", string(content.ItemType)),
				zap.Uint("itemId", content.ItemID))
			continue
		}
		rows = append(rows, contentRow{Content: content, Item: item})
	}

	return views.Page(c, "manage/module/content_list", fiber.Map{
		"Title":    module.Course.Title,
		"Course":   &module.Course,
		"Modules":  modules,
		"Module":   module,
		"Contents": rows,
	})
}

func renderContentForm(c *fiber.Ctx, module *courseModels.Module, kind courseModels.ItemKind, item courseModels.Item, form *courseValidator.ContentForm, errs map[string]string) error {
	data := fiber.Map{
		"Kind":    kind,
		"Form":    form,
		"Errors":  errs,
		"Editing": item != nil,
		"Action":  fmt.Sprintf("/course/module/%d/content/%s/create", module.ID, kind),
	}
	if item != nil {
		data["Title"] = "Edit content"
		data["Action"] = fmt.Sprintf("/course/module/%d/content/%s/%d", module.ID, kind, item.Base().ID)
		data["CurrentFile"] = item.StoredFile()
	} else {
		data["Title"] = "Add content"
	}
	return views.Page(c, "manage/content/form", data)
}

// ContentFormPage renders the form of the resolved kind, filled from the item when editing
func ContentFormPage(c *fiber.Ctx) error {
	module := c.Locals("module").(*courseModels.Module)
	kind := c.Locals("itemKind").(courseModels.ItemKind)
	item, _ := c.Locals("item").(courseModels.Item)

	form := &courseValidator.ContentForm{}
	if item != nil {
		form.Title = item.Base().Title
		switch it := item.(type) {
		case *courseModels.Text:
			form.Content = it.Content
		case *courseModels.Video:
			form.URL = it.URL
		}
	}
	return renderContentForm(c, module, kind, item, form, nil)
}

// ContentSave stores the item. A new item is linked into the module with
// a fresh order; an edited one keeps its content row.
func ContentSave(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	module := c.Locals("module").(*courseModels.Module)
	kind := c.Locals("itemKind").(courseModels.ItemKind)
	form := c.Locals("contentForm").(*courseValidator.ContentForm)
	errs := c.Locals("formErrors").(map[string]string)
	item, editing := c.Locals("item").(courseModels.Item)

	if len(errs) > 0 {
		return renderContentForm(c, module, kind, item, form, errs)
	}

	if !editing {
		var err error
		if item, err = courseModels.NewItem(kind); err != nil {
			return lookupError(c, err)
		}
	}
	base := item.Base()
	base.OwnerID = userId
	base.Title = form.Title

	var previousFile, uploaded string
	switch it := item.(type) {
	case *courseModels.Text:
		it.Content = form.Content
	case *courseModels.Video:
		it.URL = form.URL
	case *courseModels.File, *courseModels.Image:
		if form.Upload != nil {
			url, err := utils.Media.Save(form.Upload, uploadFolder(kind), form.MIME)
			if err != nil {
				return err
			}
			previousFile, uploaded = item.StoredFile(), url
			setStoredFile(item, url)
		}
	}

	if err := courseRepository.SaveItem(database.Database.Db, module.ID, item, !editing); err != nil {
		if uploaded != "" {
			if rmErr := utils.Media.Remove(uploaded); rmErr != nil {
				logger.Log.Warn("failed to remove upload of unsaved item", zap.String("file", uploaded), zap.Error(rmErr))
			}
		}
		return err
	}

	if previousFile != "" {
		if err := utils.Media.Remove(previousFile); err != nil {
			logger.Log.Warn("failed to remove replaced upload", zap.String("file", previousFile), zap.Error(err))
		}
	}

	return c.Redirect(moduleContentsPath(module.ID), fiber.StatusSeeOther)
}

func uploadFolder(kind courseModels.ItemKind) string {
	if kind == courseModels.KindImage {
		return "images"
	}
	return "files"
}

func setStoredFile(item courseModels.Item, url string) {
	switch it := item.(type) {
	case *courseModels.File:
		it.File = url
	case *courseModels.Image:
		it.File = url
	}
}

// ContentDelete removes an owned content row together with its item
func ContentDelete(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	contentID := c.Locals("contentID").(uint)
	db := database.Database.Db

	content, err := courseRepository.GetOwnedContent(db, contentID, userId)
	if err != nil {
		return lookupError(c, err)
	}

	removed, err := courseRepository.DeleteContent(db, content)
	if err != nil {
		return err
	}
	if removed != nil {
		utils.RemoveStoredFile(removed)
	}

	return c.Redirect(moduleContentsPath(content.ModuleID), fiber.StatusSeeOther)
}
