// Package proposal writes the technical proposal: a fixed set of sections drafted in
// parallel from the RFP, the company profile, the gap report and the recorded answers.
package proposal

// Section is one entry of the proposal outline.
type Section struct {
	Name        string
	Description string
}

// Section names that carry extra writing rules.
const (
	SectionCompanyOverview = "نبذة عن الشركة"
	SectionGovProjects     = "المشاريع الحكومية المنجزة"
	SectionStaffing        = "الكوادر البشرية (الهيكل الإداري والفني)"
	SectionPricing         = "الكميات والأسعار"
	SectionOperationalNeed = "الاحتياجات التأسيسية والتشغيلية"
)

// FixedSections returns the proposal outline in document order.
func FixedSections() []Section {
	return []Section{
		{
			Name:        "مقدمة ومعلومات عن المشروع",
			Description: "ملخص سياق مشروع الجهة والتحديات والغاية العامة، بالاعتماد على RFP فقط.",
		},
		{
			Name: SectionCompanyOverview,
			Description: "قدّم تعريفاً موجزاً بالشركة (التأسيس/الترخيص/الرسالة/المجالات) " +
				"بالاستناد حصراً إلى company_info. إذا لم تُذكر معلومة اكتب: غير مذكور.",
		},
		{
			Name: SectionGovProjects,
			Description: "اذكر المشاريع الحكومية السابقة إن وُجدت في company_info، مع نبذة قصيرة لكل مشروع " +
				"(الجهة، الدور، النتيجة). إذا لم توجد مشاريع حكومية صرّح: غير مذكور.",
		},
		{
			Name:        "أهداف المشروع",
			Description: "اسرد الأهداف القابلة للقياس كما فهمناها من RFP فقط. لا تختلق أهدافاً.",
		},
		{
			Name: "نطاق العمل",
			Description: "عرّف الأنشطة بدقة وفق RFP: المسح الشامل، المتابعة والتقييم، نقل الأنقاض، " +
				"قواعد بيانات/تقارير… بيّن ما نغطيه وما يحتاج توضيح.",
		},
		{
			Name:        "منهجية تنفيذ المشروع ومراحل التنفيذ",
			Description: "منهجية خطوة بخطوة مع مراحل واضحة ومعايير قبول كل مرحلة.",
		},
		{
			Name:        "الخطة التفصيلية لتنفيذ المشروع",
			Description: "خطة عمل عملية (أنشطة، مسؤوليات، نقاط تسليم). استخدم صيغاً زمنية نسبية.",
		},
		{
			Name:        "مخرجات المشروع",
			Description: "عدّد المخرجات (تقارير، قواعد بيانات، لوحات متابعة…)، واربط كل مخرج بمرحلته.",
		},
		{
			Name: SectionStaffing,
			Description: "قدّم هيكل الفريق والأدوار والمسؤوليات وفق company_info إن وُجد، " +
				"ومواءمته مع نطاق العمل. إن غاب تفصيل معيّن اكتب: غير مذكور.",
		},
		{
			Name:        "حوكمة المشروع والهيكل التنظيمي والأدوار والمسؤوليات",
			Description: "نموذج الحوكمة وقنوات الاعتماد، اجتماعات دورية، وحدود المسؤوليات.",
		},
		{
			Name:        "البرنامج الزمني للعمل بالمشروع",
			Description: "تصور زمني رفيع المستوى يربط المراحل بالمخرجات (قابل للتحويل إلى Gantt).",
		},
		{
			Name:        "الجودة والسلامة والامتثال",
			Description: "نظام ضمان الجودة والسلامة والالتزام بالأنظمة المحلية، مع ربط بنتائج المطابقة.",
		},
		{
			Name: SectionPricing,
			Description: "إذا كانت جداول الكميات/الأسعار مذكورة في RFP، لخّصها في جدول نصي " +
				"(البند، الوحدة، الكمية، السعر، الإجمالي). " +
				"إن لم تُذكر، اكتب: غير مذكور/بانتظار الاعتماد من الجهة.",
		},
		{
			Name: SectionOperationalNeed,
			Description: "استعرض ما يلزم إن كان مذكوراً في RFP: (إيجار مقر، توفير سيارات، معدات، وسائل سلامة، …). " +
				"إن لم يُذكر بند محدد اكتب: غير مذكور.",
		},
		{
			Name: "الأسئلة والاستفسارات والمتطلبات الإضافية من الجهة",
			Description: "ادمج الأسئلة العامة وأسئلة الفجوات في قائمة مرقمة مختصرة " +
				"وتوضح ما يلزم من الجهة للاعتماد أو الإيضاح.",
		},
		{
			Name:        "الخاتمة",
			Description: "تأكيد الجاهزية لاجتماع قصير لمراجعة النقاط غير الواضحة والانطلاق بعد اعتماد المتطلبات.",
		},
	}
}
