package testutil

import "github.com/Veraticus/carpicker/internal/model"

// ToyotaFixture returns a small catalog shaped like the bundled Toyota CSV.
// Each call returns a fresh slice that callers may modify.
func ToyotaFixture() []model.Vehicle {
	return []model.Vehicle{
		{Model: "Camry", Year: 2020, Price: 22000, Transmission: "Automatic", Mileage: 30000, FuelType: "Gasoline", MPG: 32, FinanceMonthly: 350, LeaseMonthly: 280, Horsepower: 203},
		{Model: "Corolla", Year: 2020, Price: 18000, Transmission: "Automatic", Mileage: 25000, FuelType: "Gasoline", MPG: 35, FinanceMonthly: 300, LeaseMonthly: 250, Horsepower: 169},
		{Model: "RAV4", Year: 2021, Price: 28000, Transmission: "Automatic", Mileage: 15000, FuelType: "Hybrid", MPG: 40, FinanceMonthly: 450, LeaseMonthly: 380, Horsepower: 219},
		{Model: "Yaris", Year: 2019, Price: 12500, Transmission: "Manual", Mileage: 41000, FuelType: "Petrol", MPG: 52.3, FinanceMonthly: 210, LeaseMonthly: 175, Horsepower: 106},
		{Model: "Hilux", Year: 2018, Price: 24500, Transmission: "Manual", Mileage: 61000, FuelType: "Diesel", MPG: 36.2, FinanceMonthly: 390, LeaseMonthly: 330, Horsepower: 148},
	}
}

// ToyotaCSV is ToyotaFixture rendered as catalog CSV, including the
// extra tax and engineSize columns the source data carries.
const ToyotaCSV = `model,year,price,transmission,mileage,fuelType,tax,mpg,engineSize,finance_monthly,lease_monthly,horsepower
Camry,2020,22000,Automatic,30000,Gasoline,145,32,2.5,350,280,203
Corolla,2020,18000,Automatic,25000,Gasoline,145,35,1.8,300,250,169
RAV4,2021,28000,Automatic,15000,Hybrid,140,40,2.5,450,380,219
Yaris,2019,12500,Manual,41000,Petrol,150,52.3,1.0,210,175,106
Hilux,2018,24500,Manual,61000,Diesel,265,36.2,2.4,390,330,148
`
