package planner

import "github.com/rhyrak/course-planner/pkg/model"

func catalog() []model.Course {
	return []model.Course{
		{
			ID: "CS101", Name: "計算機概論", Teacher: "王大明", Department: "資訊工程學系", Room: "EE-101",
			Credit: "3", Grade: "1", Compulsory: true, Restrict: 60, Select: 10, Remaining: 20,
			ClassTime: model.ClassTime{"234"}, Tags: []string{"必修", "資訊", "必修"},
		},
		{
			ID: "CS102", Name: "Data Structures", Teacher: "李小華", Department: "資訊工程學系", Room: "EE-102",
			Credit: "3", Grade: "2", Compulsory: true, Restrict: 40, Select: 50, Remaining: 5,
			ClassTime: model.ClassTime{"", "56"}, Tags: []string{"必修", "資訊"},
		},
		{
			ID: "CS201", Name: "演算法", Teacher: "王大明", Department: "資訊工程學系", Room: "EE-201",
			Credit: "3", Grade: "3", Compulsory: false, English: true, Restrict: 30, Select: 40, Remaining: -3,
			ClassTime: model.ClassTime{"4", "", "", "", "B"}, Tags: []string{"選修", "資訊"},
		},
		{
			ID: "MATH101", Name: "微積分", Teacher: "陳美玲", Department: "應用數學系", Room: "M-1",
			Credit: "4", Grade: "0", Compulsory: true, MultipleCompulsory: true, Restrict: 120, Select: 100, Remaining: 75,
			ClassTime: model.ClassTime{"", "", "12", "", "1"}, Tags: []string{"必修"},
		},
		{
			ID: "ENG101", Name: "英文閱讀", Teacher: "Smith", Department: "外國語文學系", Room: "L-3",
			Credit: "2", Grade: "1", Compulsory: false, English: true, Restrict: 30, Select: 45, Remaining: 0,
			ClassTime: model.ClassTime{"", "", "", "78"}, Tags: []string{"選修"},
		},
	}
}

func ids(courses []model.Course) []model.CourseID {
	out := make([]model.CourseID, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func find(courses []model.Course, id model.CourseID) model.Course {
	for _, c := range courses {
		if c.ID == id {
			return c
		}
	}
	panic("no course " + string(id))
}
