package resume

import "testing"

func TestParseInfo(t *testing.T) {
	lines := []string{
		"",
		"Иванов Иван Иванович",
		"Мужчина, 30 лет, родился 15 марта 1994",
		"+7 (912) 3456789 — предпочитаемый способ связи",
		"ivanov@example.com",
		"Проживает: Москва",
		"Гражданство: Россия, есть разрешение на работу: Россия",
		"Занятость: полная занятость",
		"График работы: удаленная работа",
	}

	var p Profile
	parseInfo(lines, &p)

	if p.FullName != "Иванов Иван Иванович" {
		t.Fatalf("unexpected full name: %q", p.FullName)
	}
	if p.Gender != "Мужчина" {
		t.Fatalf("unexpected gender: %q", p.Gender)
	}
	if p.Age == nil || *p.Age != 30 {
		t.Fatalf("unexpected age: %v", p.Age)
	}
	if p.DateOfBirth != "15 марта 1994" {
		t.Fatalf("unexpected date of birth: %q", p.DateOfBirth)
	}
	if p.Contact.Phone != "+7(912)3456789" {
		t.Fatalf("phone not normalized: %q", p.Contact.Phone)
	}
	if p.Contact.Email != "ivanov@example.com" {
		t.Fatalf("unexpected email: %q", p.Contact.Email)
	}
	if p.Contact.Location != "Москва" {
		t.Fatalf("unexpected location: %q", p.Contact.Location)
	}
	if p.Citizenship != "Россия" {
		t.Fatalf("unexpected citizenship: %q", p.Citizenship)
	}
	if p.WorkPermit != "Россия" {
		t.Fatalf("unexpected work permit: %q", p.WorkPermit)
	}
	if p.Busyness != "полная занятость" {
		t.Fatalf("unexpected busyness: %q", p.Busyness)
	}
	if p.WorkSchedule != "удаленная работа" {
		t.Fatalf("unexpected work schedule: %q", p.WorkSchedule)
	}
}

func TestParseInfoFirstMatchWins(t *testing.T) {
	lines := []string{
		"Петрова Анна",
		"first@example.com",
		"second@example.com",
	}

	var p Profile
	parseInfo(lines, &p)

	if p.Contact.Email != "first@example.com" {
		t.Fatalf("expected first email to win, got %q", p.Contact.Email)
	}
}

func TestParseInfoMissingFields(t *testing.T) {
	var p Profile
	parseInfo([]string{"Сидоров Петр"}, &p)

	if p.FullName != "Сидоров Петр" {
		t.Fatalf("unexpected full name: %q", p.FullName)
	}
	if p.Age != nil || p.Gender != "" || p.Contact.Phone != "" {
		t.Fatalf("missing fields must stay empty: %+v", p)
	}
}

func TestParseExperience(t *testing.T) {
	lines := []string{
		"Опыт работы — 5 лет 3 месяца",
		"Март 2020 — настоящее время",
		"3 года 2 месяца ООО Рога и Копыта",
		"Информационные технологии, системная интеграция, интернет",
		"2 года 1 месяц Завод",
		"Металлургия, металлообработка",
	}

	var p Profile
	parseExperience(lines, defaultRelevanceMarkers, &p)

	if p.TotalExperienceMonths == nil || *p.TotalExperienceMonths != 63 {
		t.Fatalf("unexpected total experience: %v", p.TotalExperienceMonths)
	}
	if p.RelevantExperienceMonths != 38 {
		t.Fatalf("expected 38 relevant months, got %d", p.RelevantExperienceMonths)
	}
	if len(p.RelevantExperience) != 1 {
		t.Fatalf("expected 1 relevant stint, got %d", len(p.RelevantExperience))
	}
	if got := p.RelevantExperience[0]; got.Company != "ООО Рога и Копыта" || got.Months != 38 {
		t.Fatalf("unexpected relevant stint: %+v", got)
	}
}

func TestParseExperienceStintCountsOnce(t *testing.T) {
	lines := []string{
		"Опыт работы — 1 год",
		"1 год Стартап",
		"Информационные технологии, интернет",
		"Информационные технологии, разработка ПО",
	}

	var p Profile
	parseExperience(lines, defaultRelevanceMarkers, &p)

	if p.RelevantExperienceMonths != 12 {
		t.Fatalf("stint counted more than once: %d months", p.RelevantExperienceMonths)
	}
}

func TestParseExperienceMonthsOnlyTotal(t *testing.T) {
	var p Profile
	parseExperience([]string{"Опыт работы — 7 месяцев"}, nil, &p)

	if p.TotalExperienceMonths == nil || *p.TotalExperienceMonths != 7 {
		t.Fatalf("unexpected total experience: %v", p.TotalExperienceMonths)
	}
}

func TestParseEducation(t *testing.T) {
	lines := []string{
		"Образование",
		"Высшее образование (бакалавр)",
		"2016 МГТУ им. Баумана, Москва Информатика и системы управления,",
		"Программная инженерия, бакалавр (очная форма)",
	}

	var p Profile
	parseEducation(lines, &p)

	if p.Education == nil {
		t.Fatalf("expected education to be parsed")
	}
	if p.Education.Year != "2016" {
		t.Fatalf("unexpected year: %q", p.Education.Year)
	}
	if p.Education.Institution != "МГТУ им. Баумана" {
		t.Fatalf("unexpected institution: %q", p.Education.Institution)
	}
	if p.Education.City != "Москва" {
		t.Fatalf("unexpected city: %q", p.Education.City)
	}
	if p.Education.DegreeStatus != "Высшее образование (бакалавр)" {
		t.Fatalf("unexpected degree status: %q", p.Education.DegreeStatus)
	}
	if p.Education.Degree != "бакалавр" {
		t.Fatalf("unexpected degree: %q", p.Education.Degree)
	}
}

func TestParseEducationPartialStaysNil(t *testing.T) {
	var p Profile
	parseEducation([]string{"Образование", "Высшее"}, &p)

	if p.Education != nil {
		t.Fatalf("partial education must stay nil, got %+v", p.Education)
	}
}

func TestParseCourses(t *testing.T) {
	lines := []string{
		"2021 Разработка на Go, Яндекс",
		"Практикум",
		"2019 Алгоритмы и структуры данных",
	}

	var p Profile
	parseCourses(lines, &p)

	if len(p.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(p.Courses))
	}
	// The year-less line continues the previous entry's place.
	if got := p.Courses[0]; got.Year != "2021" || got.Name != "Разработка на Go" || got.Place != "Яндекс Практикум" {
		t.Fatalf("unexpected first course: %+v", got)
	}
	if got := p.Courses[1]; got.Year != "2019" || got.Name != "Алгоритмы и структуры данных" || got.Place != "" {
		t.Fatalf("unexpected second course: %+v", got)
	}
}

func TestParseSkills(t *testing.T) {
	lines := []string{
		"Знание языков Русский — Родной",
		"Навыки",
		"Go  PostgreSQL  Docker   Git",
	}

	var p Profile
	parseSkills(lines, &p)

	want := []string{"Go", "PostgreSQL", "Docker", "Git"}
	if len(p.Skills) != len(want) {
		t.Fatalf("expected %d skills, got %v", len(want), p.Skills)
	}
	for i, skill := range want {
		if p.Skills[i] != skill {
			t.Fatalf("unexpected skill at %d: %q", i, p.Skills[i])
		}
	}
}

func TestParseDesiredSalary(t *testing.T) {
	lines := []string{
		"Желаемая зарплата: 150 000",
		"руб.",
	}

	var p Profile
	parseDesiredSalary(lines, &p)

	if p.DesiredSalary == nil || p.DesiredSalary.Amount == nil {
		t.Fatalf("expected desired salary to be parsed")
	}
	if *p.DesiredSalary.Amount != 150000 {
		t.Fatalf("unexpected amount: %d", *p.DesiredSalary.Amount)
	}
	if p.DesiredSalary.Currency != "руб." {
		t.Fatalf("unexpected currency: %q", p.DesiredSalary.Currency)
	}
}

func TestParseDesiredSalaryCurrencyGuard(t *testing.T) {
	lines := []string{
		"Желаемая зарплата 100 000",
		"в месяц на руки",
		"Желаемая зарплата 120 000",
		"USD",
	}

	var p Profile
	parseDesiredSalary(lines, &p)

	// The first occurrence is abandoned, scanning continues forward.
	if p.DesiredSalary == nil || p.DesiredSalary.Amount == nil || *p.DesiredSalary.Amount != 120000 {
		t.Fatalf("unexpected desired salary: %+v", p.DesiredSalary)
	}
	if p.DesiredSalary.Currency != "USD" {
		t.Fatalf("unexpected currency: %q", p.DesiredSalary.Currency)
	}
}

func TestParseDesiredSalaryLabelAtEOF(t *testing.T) {
	var p Profile
	parseDesiredSalary([]string{"Желаемая зарплата 90 000"}, &p)

	if p.DesiredSalary != nil {
		t.Fatalf("salary without currency line must stay nil, got %+v", p.DesiredSalary)
	}
}

func TestDeriveWorkFormat(t *testing.T) {
	cases := []struct {
		busyness string
		schedule string
		want     string
	}{
		{"полная занятость", "удаленная работа", "remote"},
		{"полная занятость", "гибрид", "hybrid"},
		{"полная занятость", "на месте работодателя", "office"},
		{"полная занятость", "полный день", "office"},
		{"", "", ""},
	}

	for _, tc := range cases {
		if got := deriveWorkFormat(tc.busyness, tc.schedule); got != tc.want {
			t.Fatalf("deriveWorkFormat(%q, %q) = %q, want %q", tc.busyness, tc.schedule, got, tc.want)
		}
	}
}

func TestDeriveEmploymentType(t *testing.T) {
	cases := []struct {
		busyness string
		schedule string
		want     string
	}{
		{"стажировка", "", "internship"},
		{"частичная занятость", "", "part_time"},
		{"подработка", "", "part_time"},
		{"полная занятость", "полный день", "full_time"},
		{"", "", ""},
	}

	for _, tc := range cases {
		if got := deriveEmploymentType(tc.busyness, tc.schedule); got != tc.want {
			t.Fatalf("deriveEmploymentType(%q, %q) = %q, want %q", tc.busyness, tc.schedule, got, tc.want)
		}
	}
}
