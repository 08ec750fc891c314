package taxonomy

// Library returns the built-in MediLearn library.
func Library() *Taxonomy {
	return MustNew(librarySpecs())
}

func librarySpecs() []SectionSpec {
	return []SectionSpec{
		{Name: "Basic Sciences", Subsections: []SubsectionSpec{
			{Name: "Anatomy", Topics: []string{"Upper Limb", "Lower Limb", "Thorax", "Abdomen"}},
			{Name: "Physiology", Topics: []string{"Cardiovascular", "Respiratory", "Renal", "Endocrine"}},
			{Name: "Pathology", Topics: []string{"General Pathology", "Systemic Pathology", "Clinical Pathology"}},
		}},
		{Name: "Clinical Medicine", Subsections: []SubsectionSpec{
			{Name: "Internal Medicine", Topics: []string{"Cardiology", "Pulmonology", "Gastroenterology"}},
			{Name: "Surgery", Topics: []string{"General Surgery", "Orthopedics", "Neurosurgery"}},
			{Name: "Emergency Medicine", Topics: []string{"Trauma", "Critical Care", "Procedures"}},
		}},
		{Name: "Clinical Skills", Subsections: []SubsectionSpec{
			{Name: "Physical Examination", Topics: []string{"General Exam", "System-wise Examination"}},
			{Name: "Procedures", Topics: []string{"Basic Procedures", "Advanced Procedures"}},
			{Name: "Communication", Topics: []string{"Patient History", "Case Presentation"}},
		}},
	}
}
